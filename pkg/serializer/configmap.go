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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gitopskit/strata/pkg/defaults"
	"github.com/gitopskit/strata/pkg/header"
	"github.com/gitopskit/strata/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
	"k8s.io/client-go/kubernetes"
)

// ConfigMapWriter writes serialized strata resources to a Kubernetes
// ConfigMap, the hand-off point to deployment tooling that consumes resolved
// configurations from the cluster. The ConfigMap is created if it doesn't
// exist, or updated if it does.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format

	// kube overrides the shared client discovery when set; used by tests.
	kube kubernetes.Interface
}

// NewConfigMapWriter creates a new ConfigMapWriter that writes to the
// specified namespace and ConfigMap name in the given format.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to YAML", "format", format)
		format = FormatYAML
	}
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    format,
	}
}

// Serialize writes the resource to a ConfigMap. The ConfigMap will have:
//   - data.resource.{yaml|json|txt}: the serialized resource content
//   - data.format: the format used
//   - data.timestamp: ISO 8601 timestamp of when the resource was emitted
func (w *ConfigMapWriter) Serialize(ctx context.Context, resource any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	kube := w.kube
	if kube == nil {
		c, config, err := client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		kube = c

		// Log authentication context for audit
		authInfo := "default"
		switch {
		case config.AuthProvider != nil:
			authInfo = config.AuthProvider.Name
		case config.ExecProvider != nil:
			authInfo = "exec"
		case config.BearerToken != "":
			authInfo = "bearer-token"
		case config.CertData != nil:
			authInfo = "cert"
		}

		slog.Info("configmap operation",
			"namespace", w.namespace,
			"name", w.name,
			"auth_method", authInfo,
			"format", w.format)
	}

	var content []byte
	var err error
	var extension string
	switch w.format {
	case FormatJSON:
		content, err = serializeJSON(resource)
		extension = "json"
	case FormatYAML:
		content, err = serializeYAML(resource)
		extension = "yaml"
	case FormatTable:
		content, err = serializeTable(resource)
		extension = "txt"
	default:
		return fmt.Errorf("unsupported format for ConfigMap: %s", w.format)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize resource: %w", err)
	}

	// Resources carrying a header contribute kind/version/timestamp labels.
	var resourceVersion string
	var resourceKind string
	var resourceTimestamp string

	if headerData, ok := resource.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		resourceKind = headerData.GetKind().String()
		metadata := headerData.GetMetadata()
		if v, exists := metadata["version"]; exists {
			resourceVersion = v
		}
		if ts, exists := metadata["timestamp"]; exists {
			resourceTimestamp = ts
		}
	}

	if resourceVersion == "" {
		resourceVersion = "unknown"
	}
	if resourceKind == "" {
		resourceKind = header.KindResolvedConfig.String()
	}
	if resourceTimestamp == "" {
		resourceTimestamp = time.Now().UTC().Format(time.RFC3339)
	}

	dataKey := fmt.Sprintf("resource.%s", extension)
	configMapData := map[string]string{
		dataKey:     string(content),
		"format":    string(w.format),
		"timestamp": resourceTimestamp,
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "strata",
			"app.kubernetes.io/component": resourceKind,
			"app.kubernetes.io/version":   resourceVersion,
		}).
		WithData(configMapData)

	// Server-Side Apply gives atomic create-or-update; Force takes ownership
	// from a previous field manager (CLI vs server writing the same map).
	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	_, err = kube.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		configMap,
		metav1.ApplyOptions{
			FieldManager: "strata",
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap: %w", err)
	}

	return nil
}

// Close is a no-op for ConfigMapWriter as there are no resources to release.
// This method exists to satisfy the Closer interface.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name
// and returns the namespace and name components.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)

	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
