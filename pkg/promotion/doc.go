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

// Package promotion checks promotion pipelines for configuration monotonicity.
//
// A pipeline is an ordered list of stages, lowest risk first. The sequencer
// walks adjacent stage pairs and verifies that each configured field only
// moves in its allowed direction: with the default rules, the minimum
// replica floor may only rise toward production and utilization thresholds
// may only tighten. Rules are configurable per check, so a pipeline can also
// constrain replicas, resource requests and limits, or appVersion.
//
// Like validation, a promotion check collects every violation before
// reporting, and a rule breach is a report entry, never an error.
package promotion
