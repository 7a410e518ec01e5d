package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
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
	cause := errors.New("connection reset")
	ctx := map[string]interface{}{
		"endpoint": "/api/2.0/clusters/list",
		"attempts": 3,
	}

	err := WrapWithContext(ErrCodeUnavailable, "cluster listing failed", cause, ctx)

	if err.Code != ErrCodeUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeUnavailable, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["endpoint"] != "/api/2.0/clusters/list" {
		t.Errorf("expected endpoint to be recorded")
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

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{
			name: "structured error",
			err:  New(ErrCodeUnauthorized, "bad token"),
			want: ErrCodeUnauthorized,
		},
		{
			name: "wrapped in fmt.Errorf",
			err:  fmt.Errorf("collect: %w", New(ErrCodeTimeout, "deadline exceeded")),
			want: ErrCodeTimeout,
		},
		{
			name: "plain error",
			err:  errors.New("something broke"),
			want: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeNotFound, "no such path")
	outer := Wrap(ErrCodeUnavailable, "listing failed", inner)

	if !IsCode(outer, ErrCodeUnavailable) {
		t.Error("expected outer code to match")
	}
	if !IsCode(outer, ErrCodeNotFound) {
		t.Error("expected inner code to match through the chain")
	}
	if IsCode(outer, ErrCodeUnauthorized) {
		t.Error("unexpected code match")
	}
	if IsCode(nil, ErrCodeNotFound) {
		t.Error("nil error should not match any code")
	}
	if IsCode(errors.New("plain"), ErrCodeNotFound) {
		t.Error("plain error should not match any code")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeUnauthorized,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeInvalidResponse,
		ErrCodeUnavailable,
		ErrCodeResolutionFailed,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}
