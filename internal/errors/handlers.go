package errors

import (
	"fmt"
	"log"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for CLI interface
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{
		Verbose: verbose,
	}
}

// HandleError handles errors for CLI interface
func (h *CLIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)

	if h.Verbose {
		log.Printf("[%s] %s: %s", appErr.Severity, appErr.Code, appErr.Error())
		if appErr.Cause != nil {
			log.Printf("Caused by: %v", appErr.Cause)
		}
	}

	return fmt.Errorf("%s", h.FormatError(appErr))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	switch appErr.Severity {
	case SeverityCritical:
		return fmt.Sprintf("❌ CRITICAL: %s", appErr.Message)
	case SeverityError:
		return fmt.Sprintf("❌ ERROR: %s", appErr.Message)
	case SeverityWarning:
		return fmt.Sprintf("⚠️  WARNING: %s", appErr.Message)
	case SeverityInfo:
		return fmt.Sprintf("ℹ️  INFO: %s", appErr.Message)
	default:
		return fmt.Sprintf("❌ %s", appErr.Message)
	}
}

// TUIErrorHandler handles errors for TUI interface
type TUIErrorHandler struct {
	ShowDetails bool
}

// NewTUIErrorHandler creates a new TUI error handler
func NewTUIErrorHandler(showDetails bool) *TUIErrorHandler {
	return &TUIErrorHandler{
		ShowDetails: showDetails,
	}
}

// FormatError formats an error for TUI display
func (h *TUIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if h.ShowDetails && appErr.Details != "" {
		message = fmt.Sprintf("%s (%s)", message, appErr.Details)
	}

	return message
}

// HandleError handles errors for TUI interface
func (h *TUIErrorHandler) HandleError(err error) error {
	return GetAppError(err)
}

// StatusType maps an error's severity onto a TUI status line type
func (h *TUIErrorHandler) StatusType(err error) string {
	appErr := GetAppError(err)

	switch appErr.Severity {
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "error"
	}
}
