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

// Package validator evaluates semantic rules against resolved configurations.
//
// Structural correctness (known fields, right types) is established by the
// resolver before a ResolvedConfig exists; this package checks semantic
// coherence on top of that: the autoscaling window is ordered, the replica
// count sits inside it, utilization thresholds are percentages, resource
// requests fit under their limits, and the ingress host is a real hostname.
//
// Validation collects: a failed check records its violation and evaluation
// continues, so a single run reports everything wrong with a configuration.
// A valid result is an empty violation list with status "valid".
package validator
