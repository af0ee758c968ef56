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

// Package overlay defines environment overlay sets: ordered sequences of
// partial configuration patches applied on top of a base configuration.
//
// An overlay document looks like:
//
//	name: staging
//	patches:
//	  - name: replica-override
//	    set:
//	      replicas: 3
//	  - name: scaling-override
//	    set:
//	      autoscaling:
//	        maxReplicas: 6
//
// Patches carry their overrides in document form (field name to value) rather
// than as a typed struct, so the resolver can detect fields that are not part
// of the schema and report them as structural errors instead of silently
// dropping them. Patch order within a set is load-bearing: when two patches
// touch the same field, the later one wins.
package overlay
