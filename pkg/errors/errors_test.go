package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownField, "field not in schema")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeUnknownField {
		t.Errorf("expected code %s, got %s", ErrCodeUnknownField, err.Code)
	}
	if err.Message != "field not in schema" {
		t.Errorf("expected message 'field not in schema', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("cannot parse quantity")
	ctx := map[string]interface{}{
		"field": "resourceRequests.cpu",
		"patch": "resource-patch",
	}

	err := WrapWithContext(ErrCodeTypeMismatch, "patch value has wrong type", cause, ctx)

	if err.Code != ErrCodeTypeMismatch {
		t.Errorf("expected code %s, got %s", ErrCodeTypeMismatch, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["field"] != "resourceRequests.cpu" {
		t.Errorf("expected field to be resourceRequests.cpu")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}

	var se *StructuredError
	if !errors.As(err, &se) {
		t.Error("expected errors.As to find StructuredError")
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodeUnknownField, "nope")
	if !IsCode(err, ErrCodeUnknownField) {
		t.Error("expected IsCode to match UNKNOWN_FIELD")
	}
	if IsCode(err, ErrCodeTypeMismatch) {
		t.Error("did not expect IsCode to match TYPE_MISMATCH")
	}
	if IsCode(errors.New("plain"), ErrCodeUnknownField) {
		t.Error("plain errors should not match any code")
	}
}
