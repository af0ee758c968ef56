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

package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/api/resource"
)

// Quantity is a resource quantity (CPU in cores/millicores, memory in bytes
// with binary suffixes) with YAML document support. It wraps the Kubernetes
// resource.Quantity so values like "500m" and "256Mi" parse, compare, and
// serialize exactly as they do in deployment manifests.
//
// Quantities are only comparable within the same dimension; the validator
// never compares a CPU quantity against a memory quantity.
type Quantity struct {
	resource.Quantity
}

// ParseQuantity parses a quantity string like "500m", "2", or "256Mi".
func ParseQuantity(s string) (Quantity, error) {
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return Quantity{q}, nil
}

// MustParseQuantity parses a quantity string and panics on failure.
// Use only for hardcoded values and test fixtures.
func MustParseQuantity(s string) Quantity {
	return Quantity{resource.MustParse(s)}
}

// Clone returns an independent copy of the quantity.
func (q Quantity) Clone() Quantity {
	return Quantity{q.Quantity.DeepCopy()}
}

// MarshalYAML serializes the quantity in its canonical string form.
func (q Quantity) MarshalYAML() (any, error) {
	return q.String(), nil
}

// UnmarshalYAML parses a quantity from its scalar document form.
func (q *Quantity) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("quantity must be a scalar: %w", err)
	}
	parsed, err := resource.ParseQuantity(s)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	q.Quantity = parsed
	return nil
}
