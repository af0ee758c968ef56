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

// Package header provides the common resource envelope for strata data structures.
//
// The Header type is inlined into resolved configurations, validation results,
// and promotion reports so that every artifact the resolver emits carries
// consistent Kind, APIVersion, and Metadata fields, following Kubernetes-style
// resource conventions. Deployment tooling consuming these artifacts can key
// off Kind without inspecting the payload shape.
package header
