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

package resolver

import (
	"fmt"
	"math"
	"sort"

	"github.com/gitopskit/strata/pkg/config"
	"github.com/gitopskit/strata/pkg/errors"
	"github.com/gitopskit/strata/pkg/overlay"
)

// Resolve merges an overlay set into a base configuration and returns the
// environment-specific resolved configuration.
//
// Patches apply in sequence; each overwrites only the fields it names, and
// nested structures (resourceRequests, resourceLimits, autoscaling) merge
// per sub-field. When two patches set the same field, the later one wins.
// An empty patch list is the identity resolution.
//
// Neither base nor set is mutated; identical inputs produce structurally
// identical outputs. On the first structural error (unknown field, type
// mismatch) resolution aborts and no ResolvedConfig is produced.
func Resolve(base *config.BaseConfig, set *overlay.OverlaySet) (*config.ResolvedConfig, error) {
	if base == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "base configuration cannot be nil")
	}
	if err := set.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid overlay set", err)
	}

	merged := base.Clone()

	for i, patch := range set.Patches {
		if err := applyPatch(merged, patch, i); err != nil {
			return nil, err
		}
	}

	return config.NewResolvedConfig(set.Name, merged), nil
}

// IsUnknownField reports whether err is a structural unknown-field error.
func IsUnknownField(err error) bool {
	return errors.IsCode(err, errors.ErrCodeUnknownField)
}

// IsTypeMismatch reports whether err is a structural type-mismatch error.
func IsTypeMismatch(err error) bool {
	return errors.IsCode(err, errors.ErrCodeTypeMismatch)
}

// applyPatch merges one patch into cfg. Fields within a patch address
// distinct schema fields, so application order inside a patch does not
// affect the result; keys are still walked in sorted order so the first
// reported error is deterministic.
func applyPatch(cfg *config.BaseConfig, patch overlay.Patch, index int) error {
	for _, field := range sortedKeys(patch.Set) {
		value := patch.Set[field]

		var err error
		switch field {
		case config.FieldAppVersion:
			cfg.AppVersion, err = stringValue(field, value, patch, index)

		case config.FieldLogLevel:
			cfg.LogLevel, err = logLevelValue(field, value, patch, index)

		case config.FieldReplicas:
			cfg.Replicas, err = countValue(field, value, patch, index)

		case config.FieldIngressHost:
			cfg.IngressHost, err = stringValue(field, value, patch, index)

		case config.FieldResourceRequests:
			err = applyResources(&cfg.ResourceRequests, field, value, patch, index)

		case config.FieldResourceLimits:
			err = applyResources(&cfg.ResourceLimits, field, value, patch, index)

		case config.FieldAutoscaling:
			err = applyAutoscaling(&cfg.Autoscaling, field, value, patch, index)

		default:
			err = unknownField(field, patch, index)
		}

		if err != nil {
			return err
		}
	}
	return nil
}

// applyResources merges a nested resource block sub-field by sub-field.
func applyResources(dst *config.Resources, field string, value any, patch overlay.Patch, index int) error {
	block, err := mapValue(field, value, patch, index)
	if err != nil {
		return err
	}

	for _, sub := range sortedKeys(block) {
		path := field + "." + sub
		switch sub {
		case config.SubfieldCPU:
			q, err := quantityValue(path, block[sub], patch, index)
			if err != nil {
				return err
			}
			dst.CPU = q
		case config.SubfieldMemory:
			q, err := quantityValue(path, block[sub], patch, index)
			if err != nil {
				return err
			}
			dst.Memory = q
		default:
			return unknownField(path, patch, index)
		}
	}
	return nil
}

// applyAutoscaling merges a nested autoscaling block sub-field by sub-field.
func applyAutoscaling(dst *config.Autoscaling, field string, value any, patch overlay.Patch, index int) error {
	block, err := mapValue(field, value, patch, index)
	if err != nil {
		return err
	}

	for _, sub := range sortedKeys(block) {
		path := field + "." + sub

		var target *int32
		switch sub {
		case config.SubfieldMinReplicas:
			target = &dst.MinReplicas
		case config.SubfieldMaxReplicas:
			target = &dst.MaxReplicas
		case config.SubfieldCPUThresholdPct:
			target = &dst.CPUThresholdPct
		case config.SubfieldMemThresholdPct:
			target = &dst.MemThresholdPct
		default:
			return unknownField(path, patch, index)
		}

		n, err := countValue(path, block[sub], patch, index)
		if err != nil {
			return err
		}
		*target = n
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// stringValue extracts a plain string field value.
func stringValue(field string, value any, patch overlay.Patch, index int) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", typeMismatch(field, "string", value, patch, index)
	}
	return s, nil
}

// logLevelValue extracts and normalizes a log level field value.
func logLevelValue(field string, value any, patch overlay.Patch, index int) (config.LogLevel, error) {
	s, ok := value.(string)
	if !ok {
		return "", typeMismatch(field, "log level", value, patch, index)
	}
	level, err := config.ParseLogLevel(s)
	if err != nil {
		return "", typeMismatch(field, "log level", value, patch, index)
	}
	return level, nil
}

// countValue extracts a non-negative integer field value that fits in an
// int32 count. YAML decodes
// integers as int; JSON decodes every number as float64, so integral
// floats are accepted as well. Nothing else is coerced.
func countValue(field string, value any, patch overlay.Patch, index int) (int32, error) {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint64:
		if v > math.MaxInt32 {
			return 0, typeMismatch(field, "integer in int32 range", value, patch, index)
		}
		n = int64(v)
	case float64:
		if v != float64(int64(v)) {
			return 0, typeMismatch(field, "integer", value, patch, index)
		}
		n = int64(v)
	default:
		return 0, typeMismatch(field, "integer", value, patch, index)
	}

	if n < 0 {
		return 0, typeMismatch(field, "non-negative integer", value, patch, index)
	}
	if n > math.MaxInt32 {
		return 0, typeMismatch(field, "integer in int32 range", value, patch, index)
	}
	return int32(n), nil
}

// quantityValue extracts a resource quantity. Quantities appear in documents
// as strings ("500m", "256Mi") or bare numbers (cpu: 2), both of which are
// valid manifest quantity forms.
func quantityValue(field string, value any, patch overlay.Patch, index int) (config.Quantity, error) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case int:
		s = fmt.Sprintf("%d", v)
	case int64:
		s = fmt.Sprintf("%d", v)
	case float64:
		s = fmt.Sprintf("%g", v)
	default:
		return config.Quantity{}, typeMismatch(field, "quantity", value, patch, index)
	}

	q, err := config.ParseQuantity(s)
	if err != nil {
		return config.Quantity{}, typeMismatch(field, "quantity", value, patch, index)
	}
	return q, nil
}

// mapValue extracts a nested block value.
func mapValue(field string, value any, patch overlay.Patch, index int) (map[string]any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, typeMismatch(field, "nested block", value, patch, index)
	}
	return m, nil
}

func unknownField(field string, patch overlay.Patch, index int) error {
	return errors.NewWithContext(errors.ErrCodeUnknownField,
		fmt.Sprintf("patch %s references field %q not in configuration schema", patch.Ref(index), field),
		map[string]any{
			"field": field,
			"patch": patch.Name,
			"index": index,
		})
}

func typeMismatch(field, expected string, value any, patch overlay.Patch, index int) error {
	return errors.NewWithContext(errors.ErrCodeTypeMismatch,
		fmt.Sprintf("patch %s supplies %T for field %q, expected %s", patch.Ref(index), value, field, expected),
		map[string]any{
			"field":    field,
			"expected": expected,
			"value":    fmt.Sprintf("%v", value),
			"patch":    patch.Name,
			"index":    index,
		})
}
