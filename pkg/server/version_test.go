package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{name: "empty accept", accept: "", want: "v1"},
		{name: "vendor v1 json", accept: "application/vnd.gitopskit.strata.v1+json", want: "v1"},
		{name: "vendor v1 yaml", accept: "application/vnd.gitopskit.strata.v1+yaml", want: "v1"},
		{name: "unsupported vendor version", accept: "application/vnd.gitopskit.strata.v2+json", want: "v1"},
		{name: "generic json", accept: "application/json", want: "v1"},
		{name: "wildcard", accept: "*/*", want: "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}

			if got := negotiateAPIVersion(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsValidAPIVersion(t *testing.T) {
	if !isValidAPIVersion("v1") {
		t.Error("expected v1 to be valid")
	}
	for _, v := range []string{"v2", "v0", "", "1"} {
		if isValidAPIVersion(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}
