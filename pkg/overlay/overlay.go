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

package overlay

import (
	"fmt"
)

// Patch is a partial configuration record touching a subset of the schema.
// Set holds the document form of the override: top-level field names mapped
// to scalar values, or to nested maps for resourceRequests, resourceLimits,
// and autoscaling. Fields absent from Set leave the current value untouched.
type Patch struct {
	// Name identifies the patch in errors and logs (e.g., "replica-override").
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Set maps schema field names to override values.
	Set map[string]any `json:"set" yaml:"set"`
}

// OverlaySet is a named, ordered collection of patches for one environment.
// Order is the caller's explicit contract: later patches take precedence over
// earlier ones for the same field. Nothing is inferred from patch names.
type OverlaySet struct {
	// Name is the environment-unique overlay name (e.g., "staging").
	Name string `json:"name" yaml:"name"`

	// Patches are applied in sequence during resolution.
	Patches []Patch `json:"patches" yaml:"patches"`
}

// Validate performs structural validation of the overlay set. An empty patch
// list is valid (identity resolution).
func (s *OverlaySet) Validate() error {
	if s == nil {
		return fmt.Errorf("overlay set cannot be nil")
	}
	if s.Name == "" {
		return fmt.Errorf("overlay set has no name")
	}
	for i, p := range s.Patches {
		if p.Set == nil {
			return fmt.Errorf("patch %s has no set block", patchRef(p, i))
		}
	}
	return nil
}

// patchRef names a patch for error messages, falling back to its index when
// the patch is anonymous.
func patchRef(p Patch, i int) string {
	if p.Name != "" {
		return fmt.Sprintf("%q (index %d)", p.Name, i)
	}
	return fmt.Sprintf("at index %d", i)
}

// Ref exposes patchRef for packages reporting patch-scoped errors.
func (p Patch) Ref(i int) string {
	return patchRef(p, i)
}
