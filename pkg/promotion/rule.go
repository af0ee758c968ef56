// Copyright (c) 2025, Strata Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package promotion

import (
	"fmt"

	"github.com/gitopskit/strata/pkg/config"
	"github.com/gitopskit/strata/pkg/errors"
	"github.com/gitopskit/strata/pkg/version"
)

// Operator represents a comparison direction in a promotion rule.
type Operator string

const (
	// OperatorGTE requires the later stage's value to be greater than or
	// equal to the earlier stage's.
	OperatorGTE Operator = ">="

	// OperatorLTE requires the later stage's value to be less than or
	// equal to the earlier stage's.
	OperatorLTE Operator = "<="
)

// IsValid checks if the Operator is one of the recognized operators.
func (o Operator) IsValid() bool {
	return o == OperatorGTE || o == OperatorLTE
}

// Rule constrains how one configuration field may change between adjacent
// pipeline stages. The operator reads left to right as "later stage Op
// earlier stage": minReplicas with ">=" means each promotion step keeps at
// least as many minimum replicas as the step before it.
type Rule struct {
	// Field is the document path of the constrained field
	// (e.g., "autoscaling.minReplicas").
	Field string `json:"field" yaml:"field"`

	// Op is the comparison direction.
	Op Operator `json:"op" yaml:"op"`

	// Description explains the rule in promotion reports.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// String returns the rule as a readable expression.
func (r Rule) String() string {
	return fmt.Sprintf("%s %s prior stage", r.Field, r.Op)
}

// DefaultRules returns the standard monotonicity rules: capacity floors may
// only rise toward production, scaling thresholds may only tighten.
func DefaultRules() []Rule {
	return []Rule{
		{
			Field:       config.FieldAutoscaling + "." + config.SubfieldMinReplicas,
			Op:          OperatorGTE,
			Description: "minimum replica floor must not shrink toward production",
		},
		{
			Field:       config.FieldAutoscaling + "." + config.SubfieldCPUThresholdPct,
			Op:          OperatorLTE,
			Description: "CPU scaling threshold must not loosen toward production",
		},
		{
			Field:       config.FieldAutoscaling + "." + config.SubfieldMemThresholdPct,
			Op:          OperatorLTE,
			Description: "memory scaling threshold must not loosen toward production",
		},
	}
}

// compareField compares the rule's field between two specs and returns the
// usual -1/0/1 ordering of later relative to earlier. Integers compare
// numerically, quantities by Quantity.Cmp, and appVersion by semantic
// version comparison.
func compareField(field string, earlier, later *config.BaseConfig) (int, error) {
	switch field {
	case config.FieldReplicas:
		return compareInt32(later.Replicas, earlier.Replicas), nil

	case config.FieldAppVersion:
		ev, err := version.ParseVersion(earlier.AppVersion)
		if err != nil {
			return 0, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"cannot parse appVersion", err, map[string]any{"appVersion": earlier.AppVersion})
		}
		lv, err := version.ParseVersion(later.AppVersion)
		if err != nil {
			return 0, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"cannot parse appVersion", err, map[string]any{"appVersion": later.AppVersion})
		}
		return lv.Compare(ev), nil

	case config.FieldAutoscaling + "." + config.SubfieldMinReplicas:
		return compareInt32(later.Autoscaling.MinReplicas, earlier.Autoscaling.MinReplicas), nil
	case config.FieldAutoscaling + "." + config.SubfieldMaxReplicas:
		return compareInt32(later.Autoscaling.MaxReplicas, earlier.Autoscaling.MaxReplicas), nil
	case config.FieldAutoscaling + "." + config.SubfieldCPUThresholdPct:
		return compareInt32(later.Autoscaling.CPUThresholdPct, earlier.Autoscaling.CPUThresholdPct), nil
	case config.FieldAutoscaling + "." + config.SubfieldMemThresholdPct:
		return compareInt32(later.Autoscaling.MemThresholdPct, earlier.Autoscaling.MemThresholdPct), nil

	case config.FieldResourceRequests + "." + config.SubfieldCPU:
		return later.ResourceRequests.CPU.Cmp(earlier.ResourceRequests.CPU.Quantity), nil
	case config.FieldResourceRequests + "." + config.SubfieldMemory:
		return later.ResourceRequests.Memory.Cmp(earlier.ResourceRequests.Memory.Quantity), nil
	case config.FieldResourceLimits + "." + config.SubfieldCPU:
		return later.ResourceLimits.CPU.Cmp(earlier.ResourceLimits.CPU.Quantity), nil
	case config.FieldResourceLimits + "." + config.SubfieldMemory:
		return later.ResourceLimits.Memory.Cmp(earlier.ResourceLimits.Memory.Quantity), nil

	default:
		return 0, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"promotion rule references unknown field", map[string]any{"field": field})
	}
}

// fieldValue renders the rule's field from a spec for report output.
func fieldValue(field string, spec *config.BaseConfig) string {
	switch field {
	case config.FieldReplicas:
		return fmt.Sprintf("%d", spec.Replicas)
	case config.FieldAppVersion:
		return spec.AppVersion
	case config.FieldAutoscaling + "." + config.SubfieldMinReplicas:
		return fmt.Sprintf("%d", spec.Autoscaling.MinReplicas)
	case config.FieldAutoscaling + "." + config.SubfieldMaxReplicas:
		return fmt.Sprintf("%d", spec.Autoscaling.MaxReplicas)
	case config.FieldAutoscaling + "." + config.SubfieldCPUThresholdPct:
		return fmt.Sprintf("%d", spec.Autoscaling.CPUThresholdPct)
	case config.FieldAutoscaling + "." + config.SubfieldMemThresholdPct:
		return fmt.Sprintf("%d", spec.Autoscaling.MemThresholdPct)
	case config.FieldResourceRequests + "." + config.SubfieldCPU:
		return spec.ResourceRequests.CPU.String()
	case config.FieldResourceRequests + "." + config.SubfieldMemory:
		return spec.ResourceRequests.Memory.String()
	case config.FieldResourceLimits + "." + config.SubfieldCPU:
		return spec.ResourceLimits.CPU.String()
	case config.FieldResourceLimits + "." + config.SubfieldMemory:
		return spec.ResourceLimits.Memory.String()
	default:
		return ""
	}
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
