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
	"github.com/gitopskit/strata/pkg/header"
)

const (
	// APIVersion is the API version for strata configuration resources.
	APIVersion = "strata.gitopskit.dev/v1alpha1"
)

// Document field paths for the configuration schema. These are the names
// patches use to address fields, and the names violations and promotion
// rules report.
const (
	FieldAppVersion       = "appVersion"
	FieldLogLevel         = "logLevel"
	FieldReplicas         = "replicas"
	FieldResourceRequests = "resourceRequests"
	FieldResourceLimits   = "resourceLimits"
	FieldIngressHost      = "ingressHost"
	FieldAutoscaling      = "autoscaling"

	SubfieldCPU             = "cpu"
	SubfieldMemory          = "memory"
	SubfieldMinReplicas     = "minReplicas"
	SubfieldMaxReplicas     = "maxReplicas"
	SubfieldCPUThresholdPct = "cpuThresholdPct"
	SubfieldMemThresholdPct = "memThresholdPct"
)

// Resources holds per-dimension resource quantities (requests or limits).
type Resources struct {
	CPU    Quantity `json:"cpu" yaml:"cpu"`
	Memory Quantity `json:"memory" yaml:"memory"`
}

// Clone returns an independent copy of the resources.
func (r Resources) Clone() Resources {
	return Resources{
		CPU:    r.CPU.Clone(),
		Memory: r.Memory.Clone(),
	}
}

// Autoscaling holds horizontal autoscaling bounds and utilization thresholds.
type Autoscaling struct {
	// MinReplicas is the lower autoscaling bound.
	MinReplicas int32 `json:"minReplicas" yaml:"minReplicas"`

	// MaxReplicas is the upper autoscaling bound.
	MaxReplicas int32 `json:"maxReplicas" yaml:"maxReplicas"`

	// CPUThresholdPct is the target CPU utilization percentage [1,100].
	CPUThresholdPct int32 `json:"cpuThresholdPct" yaml:"cpuThresholdPct"`

	// MemThresholdPct is the target memory utilization percentage [1,100].
	MemThresholdPct int32 `json:"memThresholdPct" yaml:"memThresholdPct"`
}

// BaseConfig is the default, environment-agnostic deployment configuration
// for the application. It is never mutated by a resolution; each resolution
// produces a fresh ResolvedConfig.
type BaseConfig struct {
	// AppVersion is the application version identifier (e.g., "v1.4.2").
	AppVersion string `json:"appVersion" yaml:"appVersion"`

	// LogLevel is the application logging verbosity.
	LogLevel LogLevel `json:"logLevel" yaml:"logLevel"`

	// Replicas is the desired replica count before autoscaling.
	Replicas int32 `json:"replicas" yaml:"replicas"`

	// ResourceRequests are the per-replica resource requests.
	ResourceRequests Resources `json:"resourceRequests" yaml:"resourceRequests"`

	// ResourceLimits are the per-replica resource limits.
	ResourceLimits Resources `json:"resourceLimits" yaml:"resourceLimits"`

	// IngressHost is the external hostname routed to the application.
	IngressHost string `json:"ingressHost" yaml:"ingressHost"`

	// Autoscaling holds replica bounds and scaling thresholds.
	Autoscaling Autoscaling `json:"autoscaling" yaml:"autoscaling"`
}

// Clone returns a deep copy of the configuration. Quantities carry internal
// state that must not be shared between copies.
func (c *BaseConfig) Clone() *BaseConfig {
	out := *c
	out.ResourceRequests = c.ResourceRequests.Clone()
	out.ResourceLimits = c.ResourceLimits.Clone()
	return &out
}

// ResolvedConfig is a fully merged, environment-specific configuration,
// ready for consumption by deployment tooling. It is the only long-lived
// artifact of a resolution.
type ResolvedConfig struct {
	header.Header `json:",inline" yaml:",inline"`

	// Overlay is the name of the overlay set this configuration was
	// resolved from.
	Overlay string `json:"overlay" yaml:"overlay"`

	// Environment is the environment label derived from the overlay.
	Environment string `json:"environment" yaml:"environment"`

	// Spec is the merged configuration.
	Spec BaseConfig `json:"spec" yaml:"spec"`
}

// NewResolvedConfig creates a ResolvedConfig for the given overlay name and
// merged spec. The header carries Kind and APIVersion only; callers that emit
// the artifact stamp it with Header.Init, which adds a timestamp. Resolution
// itself must stay deterministic, so no timestamp is taken here.
func NewResolvedConfig(overlay string, spec *BaseConfig) *ResolvedConfig {
	return &ResolvedConfig{
		Header: header.Header{
			Kind:       header.KindResolvedConfig,
			APIVersion: APIVersion,
		},
		Overlay:     overlay,
		Environment: overlay,
		Spec:        *spec,
	}
}
