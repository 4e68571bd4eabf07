package app

import (
	"errors"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "copy"},
			expected: "copy",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "copy", Target: "snippet"},
			expected: "copy snippet",
		},
		{
			name:     "op, target, and context",
			err:      &OperationError{Op: "import", Target: "toast.tsx", Context: "parse"},
			expected: "import toast.tsx (parse)",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "copy", Target: "snippet", Context: "xclip", Err: errors.New("exit status 1")},
			expected: "copy snippet (xclip): exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestOperationError_WithContext_Nil(t *testing.T) {
	var err *OperationError
	if err.WithContext("context") != nil {
		t.Error("expected nil result for nil receiver")
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel error")
	err := NewOperationError("copy", "snippet", sentinel)

	if !errors.Is(err, sentinel) {
		t.Error("expected errors.Is to match wrapped sentinel")
	}

	var nilErr *OperationError
	if nilErr.Unwrap() != nil {
		t.Error("expected nil from Unwrap() on nil receiver")
	}
}

func TestComponentError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ComponentError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "component only",
			err:      &ComponentError{Component: "config"},
			expected: "config",
		},
		{
			name:     "component and action",
			err:      &ComponentError{Component: "config", Action: "reload"},
			expected: "config: reload",
		},
		{
			name:     "component, action, and error",
			err:      &ComponentError{Component: "config", Action: "reload", Err: errors.New("bad toml")},
			expected: "config: reload: bad toml",
		},
		{
			name:     "component and error only",
			err:      &ComponentError{Component: "clipboard", Err: errors.New("failed")},
			expected: "clipboard: failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestComponentError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel error")
	err := NewComponentError("config", "watch", sentinel)

	if !errors.Is(err, sentinel) {
		t.Error("expected errors.Is to match wrapped sentinel")
	}
}

func TestInitError(t *testing.T) {
	inner := errors.New("no tty")
	err := &InitError{Component: "backend", Err: inner}

	if err.Error() != "init backend: no tty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInitialization) {
		t.Error("expected InitError to match ErrInitialization")
	}
	if !errors.Is(err, inner) {
		t.Error("expected InitError to match the wrapped error")
	}
}

func TestRecoveredPanicError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RecoveredPanicError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "value only",
			err:      &RecoveredPanicError{Value: "panic message"},
			expected: "panic: panic message",
		},
		{
			name:     "value with stack",
			err:      &RecoveredPanicError{Value: "panic", Stack: "goroutine 1..."},
			expected: "panic: panic\ngoroutine 1...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestRecoveredPanicError_Summary(t *testing.T) {
	err := NewRecoveredPanicError("boom", "stack trace")
	if err.Summary() != "panic: boom" {
		t.Errorf("Summary() = %q", err.Summary())
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrQuit,
		ErrAlreadyRunning,
		ErrNotRunning,
		ErrNoBackend,
		ErrInitialization,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}
