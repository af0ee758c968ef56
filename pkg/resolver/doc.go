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

// Package resolver merges environment overlay sets into base configurations.
//
// # Overview
//
// Resolve is a pure function: no I/O, no logging, no global state, no
// mutation of its inputs. Given the same base and overlay it always produces
// a structurally identical ResolvedConfig, which makes it safe to call
// concurrently without locking.
//
// # Merge semantics
//
// Patches apply in sequence. Each patch overwrites only the fields it names;
// nested blocks merge per sub-field, so a patch setting only
// autoscaling.maxReplicas leaves minReplicas from the base intact. When two
// patches in the same overlay set the same field, the later patch wins.
//
// # Structural errors
//
// The resolver type-checks, it never coerces. A patch naming a field outside
// the schema fails with an UNKNOWN_FIELD structured error; a value of the
// wrong semantic type fails with TYPE_MISMATCH. Resolution stops at the first
// structural error and no partial result is exposed. Semantic rules (replica
// bounds, threshold ranges, hostname syntax) are the validator's concern,
// not the resolver's.
package resolver
