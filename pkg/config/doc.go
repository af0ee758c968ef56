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

// Package config defines the deployment configuration data model.
//
// # Overview
//
// BaseConfig is the default, environment-agnostic configuration for an
// application: replica count, resource requests/limits, log level, ingress
// host, and autoscaling bounds. ResolvedConfig is the same shape after an
// overlay has been merged in, tagged with the originating overlay name and a
// derived environment label, and wrapped in the standard resource header.
//
// # Quantities
//
// CPU and memory values use the Kubernetes quantity syntax ("500m", "256Mi")
// via k8s.io/apimachinery, so documents round-trip byte-for-byte with the
// manifests deployment tooling consumes. Quantities are comparable only
// within the same dimension.
//
// # Document form
//
// Configurations serialize to YAML or JSON with camelCase field names:
//
//	appVersion: v1.4.2
//	logLevel: INFO
//	replicas: 2
//	resourceRequests:
//	  cpu: 100m
//	  memory: 128Mi
//	resourceLimits:
//	  cpu: 500m
//	  memory: 512Mi
//	ingressHost: app.example.com
//	autoscaling:
//	  minReplicas: 1
//	  maxReplicas: 10
//	  cpuThresholdPct: 70
//	  memThresholdPct: 80
//
// The Field* and Subfield* constants are the canonical spellings of these
// names, shared by the resolver (patch addressing), the validator (violation
// paths), and the promotion sequencer (rule fields).
package config
