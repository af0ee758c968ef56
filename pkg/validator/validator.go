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

package validator

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/gitopskit/strata/pkg/config"
	"github.com/gitopskit/strata/pkg/errors"
	"github.com/gitopskit/strata/pkg/header"
)

// checkCount is the number of semantic checks a validation evaluates.
const checkCount = 5

// Option is a functional option for configuring a Validator.
type Option func(*Validator)

// WithVersion sets the validator version recorded in result metadata.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// Validator evaluates semantic rules against resolved configurations.
// A single Validator is safe for concurrent use.
type Validator struct {
	// Version is recorded in result metadata when set.
	Version string
}

// New creates a Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate evaluates every semantic check against the resolved configuration
// and returns the complete set of violations. Checks never short-circuit:
// a failed check records its violation and evaluation continues, so one run
// reports everything that is wrong. The one exception is the replica-bounds
// check, which only makes sense against a coherent autoscaling window and is
// skipped when minReplicas exceeds maxReplicas.
//
// Validate is pure: it does not log, touch the clock, or mutate its input.
func (v *Validator) Validate(rc *config.ResolvedConfig) (*Result, error) {
	if rc == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "resolved configuration cannot be nil")
	}

	spec := &rc.Spec
	var violations []Violation

	violations = append(violations, checkAutoscalingBounds(spec)...)
	violations = append(violations, checkThresholds(spec)...)
	violations = append(violations, checkResourceOrdering(spec)...)
	violations = append(violations, checkIngressHost(spec)...)

	status := StatusValid
	if len(violations) > 0 {
		status = StatusInvalid
	}
	if violations == nil {
		violations = []Violation{}
	}

	result := &Result{
		Header: header.Header{
			Kind:       header.KindValidationResult,
			APIVersion: config.APIVersion,
		},
		Environment: rc.Environment,
		Summary: Summary{
			Checked:    checkCount,
			Violations: len(violations),
			Status:     status,
		},
		Violations: violations,
	}
	if v.Version != "" {
		result.Metadata = map[string]string{"version": v.Version}
	}
	return result, nil
}

// checkAutoscalingBounds covers the window ordering check and, when the
// window is coherent, the replica containment check. An incoherent window
// admits no replica count at all, so reporting containment on top of it
// would blame the replica field for the window's defect.
func checkAutoscalingBounds(spec *config.BaseConfig) []Violation {
	as := spec.Autoscaling

	if as.MinReplicas > as.MaxReplicas {
		return []Violation{{
			Field: config.FieldAutoscaling + "." + config.SubfieldMinReplicas,
			Value: fmt.Sprintf("%d", as.MinReplicas),
			Rule:  fmt.Sprintf("autoscaling.minReplicas (%d) must not exceed autoscaling.maxReplicas (%d)", as.MinReplicas, as.MaxReplicas),
		}}
	}

	if spec.Replicas < as.MinReplicas || spec.Replicas > as.MaxReplicas {
		return []Violation{{
			Field: config.FieldReplicas,
			Value: fmt.Sprintf("%d", spec.Replicas),
			Rule:  fmt.Sprintf("replicas (%d) must be within the autoscaling window [%d, %d]", spec.Replicas, as.MinReplicas, as.MaxReplicas),
		}}
	}
	return nil
}

// checkThresholds verifies both utilization thresholds land in [1, 100].
func checkThresholds(spec *config.BaseConfig) []Violation {
	var out []Violation
	as := spec.Autoscaling

	if as.CPUThresholdPct < 1 || as.CPUThresholdPct > 100 {
		out = append(out, Violation{
			Field: config.FieldAutoscaling + "." + config.SubfieldCPUThresholdPct,
			Value: fmt.Sprintf("%d", as.CPUThresholdPct),
			Rule:  fmt.Sprintf("autoscaling.cpuThresholdPct (%d) must be a percentage in [1, 100]", as.CPUThresholdPct),
		})
	}
	if as.MemThresholdPct < 1 || as.MemThresholdPct > 100 {
		out = append(out, Violation{
			Field: config.FieldAutoscaling + "." + config.SubfieldMemThresholdPct,
			Value: fmt.Sprintf("%d", as.MemThresholdPct),
			Rule:  fmt.Sprintf("autoscaling.memThresholdPct (%d) must be a percentage in [1, 100]", as.MemThresholdPct),
		})
	}
	return out
}

// checkResourceOrdering verifies requests never exceed limits, per dimension.
func checkResourceOrdering(spec *config.BaseConfig) []Violation {
	var out []Violation

	if spec.ResourceRequests.CPU.Cmp(spec.ResourceLimits.CPU.Quantity) > 0 {
		out = append(out, Violation{
			Field: config.FieldResourceRequests + "." + config.SubfieldCPU,
			Value: spec.ResourceRequests.CPU.String(),
			Rule: fmt.Sprintf("resourceRequests.cpu (%s) must not exceed resourceLimits.cpu (%s)",
				spec.ResourceRequests.CPU.String(), spec.ResourceLimits.CPU.String()),
		})
	}
	if spec.ResourceRequests.Memory.Cmp(spec.ResourceLimits.Memory.Quantity) > 0 {
		out = append(out, Violation{
			Field: config.FieldResourceRequests + "." + config.SubfieldMemory,
			Value: spec.ResourceRequests.Memory.String(),
			Rule: fmt.Sprintf("resourceRequests.memory (%s) must not exceed resourceLimits.memory (%s)",
				spec.ResourceRequests.Memory.String(), spec.ResourceLimits.Memory.String()),
		})
	}
	return out
}

// checkIngressHost verifies the ingress host is a plausible DNS hostname.
func checkIngressHost(spec *config.BaseConfig) []Violation {
	host := spec.IngressHost

	if host == "" {
		return []Violation{{
			Field: config.FieldIngressHost,
			Value: host,
			Rule:  "ingressHost must not be empty",
		}}
	}
	if strings.ContainsAny(host, " \t\n\r") {
		return []Violation{{
			Field: config.FieldIngressHost,
			Value: host,
			Rule:  "ingressHost must not contain whitespace",
		}}
	}
	if msgs := validation.IsDNS1123Subdomain(host); len(msgs) > 0 {
		return []Violation{{
			Field: config.FieldIngressHost,
			Value: host,
			Rule:  fmt.Sprintf("ingressHost must be a valid DNS subdomain: %s", msgs[0]),
		}}
	}
	return nil
}
