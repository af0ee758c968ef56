package serializer

import (
	"context"
	"strings"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{
			name:          "valid URI",
			uri:           "cm://gitops/strata-resolved",
			wantNamespace: "gitops",
			wantName:      "strata-resolved",
		},
		{
			name:          "name with slashes",
			uri:           "cm://ns/some/deep/name",
			wantNamespace: "ns",
			wantName:      "some/deep/name",
		},
		{
			name:    "missing scheme",
			uri:     "gitops/strata-resolved",
			wantErr: true,
		},
		{
			name:    "missing name",
			uri:     "cm://gitops",
			wantErr: true,
		},
		{
			name:    "empty namespace",
			uri:     "cm:///strata-resolved",
			wantErr: true,
		},
		{
			name:    "empty name",
			uri:     "cm://gitops/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namespace, name, err := parseConfigMapURI(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.uri)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if namespace != tt.wantNamespace || name != tt.wantName {
				t.Errorf("parsed %q as %s/%s, want %s/%s",
					tt.uri, namespace, name, tt.wantNamespace, tt.wantName)
			}
		})
	}
}

func TestNewConfigMapWriterUnknownFormat(t *testing.T) {
	w := NewConfigMapWriter("ns", "name", Format("xml"))
	if w.format != FormatYAML {
		t.Errorf("expected YAML fallback, got %s", w.format)
	}
}

func TestConfigMapWriterSerialize(t *testing.T) {
	cs := fake.NewClientset()

	w := NewConfigMapWriter("gitops", "strata-resolved", FormatYAML)
	w.kube = cs

	resolved := testResolved()
	if err := w.Serialize(context.Background(), resolved); err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	cm, err := cs.CoreV1().ConfigMaps("gitops").Get(context.Background(), "strata-resolved", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("failed to get ConfigMap: %v", err)
	}

	if cm.Labels["app.kubernetes.io/name"] != "strata" {
		t.Errorf("unexpected name label: %v", cm.Labels)
	}
	if cm.Labels["app.kubernetes.io/component"] != "ResolvedConfig" {
		t.Errorf("unexpected component label: %v", cm.Labels)
	}
	if cm.Data["format"] != "yaml" {
		t.Errorf("format = %q, want yaml", cm.Data["format"])
	}
	if cm.Data["timestamp"] == "" {
		t.Error("expected timestamp data key")
	}
	if !strings.Contains(cm.Data["resource.yaml"], "environment: staging") {
		t.Errorf("resource.yaml missing content: %q", cm.Data["resource.yaml"])
	}
}

func TestConfigMapWriterSerializeUpdatesExisting(t *testing.T) {
	existing := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Namespace: "gitops",
			Name:      "strata-resolved",
		},
		Data: map[string]string{"stale": "true"},
	}
	cs := fake.NewClientset(existing)

	w := NewConfigMapWriter("gitops", "strata-resolved", FormatJSON)
	w.kube = cs

	if err := w.Serialize(context.Background(), testResolved()); err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	cm, err := cs.CoreV1().ConfigMaps("gitops").Get(context.Background(), "strata-resolved", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("failed to get ConfigMap: %v", err)
	}
	if cm.Data["resource.json"] == "" {
		t.Error("expected resource.json data key after apply")
	}
}
