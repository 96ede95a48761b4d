package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewAppErrorCategorization(t *testing.T) {
	err := NewAppError(ErrCodeHistoryBounds, "Already at the oldest entry")
	if err.Category != CategoryHistory {
		t.Errorf("category = %s, want %s", err.Category, CategoryHistory)
	}
	if err.Severity != SeverityInfo {
		t.Errorf("severity = %s, want %s", err.Severity, SeverityInfo)
	}

	err = NewAppError(ErrCodeRefinerTimeout, "Refiner timed out")
	if !err.IsRetryable() {
		t.Error("refiner timeout should be retryable")
	}
	if NewAppError(ErrCodeInvalidSeed, "bad seed").IsRetryable() {
		t.Error("invalid seed should not be retryable")
	}
}

func TestGetAppErrorPreservesMessage(t *testing.T) {
	plain := stderrors.New("disk on fire")
	appErr := GetAppError(plain)
	if appErr.Message != "disk on fire" {
		t.Errorf("message = %q, want original text", appErr.Message)
	}
	if appErr.Cause != plain {
		t.Error("expected original error as cause")
	}

	// An AppError buried in a wrap chain comes back out.
	inner := NewAppError(ErrCodeBusy, "A generation batch is already running")
	wrapped := fmt.Errorf("handling key: %w", inner)
	if got := GetAppError(wrapped); got != inner {
		t.Error("expected wrapped AppError to be unwrapped")
	}
}

func TestWrapKeepsCauseChain(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeRefinerConnection, "Cannot reach Ollama")
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "Cannot reach Ollama") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCLIErrorHandlerFormat(t *testing.T) {
	h := NewCLIErrorHandler(false)

	got := h.FormatError(NewAppError(ErrCodeValidation, "Subjects is required"))
	if !strings.Contains(got, "WARNING") || !strings.Contains(got, "Subjects is required") {
		t.Errorf("FormatError() = %q", got)
	}

	got = h.FormatError(NewAppError(ErrCodeInternalError, "boom"))
	if !strings.Contains(got, "CRITICAL") {
		t.Errorf("FormatError() = %q", got)
	}
}

func TestTUIErrorHandlerStatusType(t *testing.T) {
	h := NewTUIErrorHandler(false)

	if got := h.StatusType(NewAppError(ErrCodeValidation, "x")); got != "warning" {
		t.Errorf("validation status = %q, want warning", got)
	}
	if got := h.StatusType(NewAppError(ErrCodeHistoryEmpty, "x")); got != "info" {
		t.Errorf("history status = %q, want info", got)
	}
	if got := h.StatusType(stderrors.New("x")); got != "error" {
		t.Errorf("plain error status = %q, want error", got)
	}

	detailed := NewTUIErrorHandler(true)
	err := NewAppError(ErrCodeStorageFailure, "Save failed").WithDetails("permission denied")
	if got := detailed.FormatError(err); !strings.Contains(got, "permission denied") {
		t.Errorf("FormatError() = %q, want details included", got)
	}
}
