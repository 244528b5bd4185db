package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Template errors
	ErrCodeTemplateRequired  ErrorCode = "TEMPLATE_REQUIRED"
	ErrCodeTemplateNotFound  ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeDescriptorInvalid ErrorCode = "DESCRIPTOR_INVALID"

	// Manifest errors
	ErrCodeManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	ErrCodeManifestInvalid  ErrorCode = "MANIFEST_INVALID"

	// Package manager errors
	ErrCodeInstallFailed   ErrorCode = "INSTALL_FAILED"
	ErrCodeUninstallFailed ErrorCode = "UNINSTALL_FAILED"

	// Command execution errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"

	// VCS errors
	ErrCodeCommitFailed ErrorCode = "COMMIT_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// SproutError represents a structured error with context
type SproutError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *SproutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SproutError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *SproutError) WithDetail(key string, value interface{}) *SproutError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *SproutError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new SproutError
func New(code ErrorCode, message string) *SproutError {
	return &SproutError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SproutError
func Wrap(err error, code ErrorCode, message string) *SproutError {
	return &SproutError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific SproutError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	sproutErr, ok := err.(*SproutError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return sproutErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	sproutErr, ok := err.(*SproutError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return sproutErr.Code
}
