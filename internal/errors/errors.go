package errors

import (
	"errors"
	"fmt"
)

// Exit codes for golden
const (
	ExitSuccess           = 0
	ExitGeneralError      = 1
	ExitDiscoveryFailed   = 2
	ExitToolFailed        = 3
	ExitMalformedFixtures = 4
	ExitConfigError       = 5
)

// HarnessError is the base error type for golden
type HarnessError struct {
	Code    int
	Message string
	Cause   error
}

func (e *HarnessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *HarnessError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *HarnessError) ExitCode() int {
	return e.Code
}

// New creates a new HarnessError
func New(code int, message string) *HarnessError {
	return &HarnessError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a HarnessError
func Wrap(code int, message string, cause error) *HarnessError {
	return &HarnessError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// DiscoveryFailed returns an error for an unreadable fixture root or suite
func DiscoveryFailed(path string, cause error) *HarnessError {
	return Wrap(ExitDiscoveryFailed, fmt.Sprintf("cannot discover fixtures in %s", path), cause)
}

// ToolFailed returns an error for a tool that could not be launched
func ToolFailed(tool string, cause error) *HarnessError {
	return Wrap(ExitToolFailed, fmt.Sprintf("cannot run tool %s", tool), cause)
}

// MalformedFixtures returns an error when annotation checks found problems
func MalformedFixtures(count int) *HarnessError {
	return New(ExitMalformedFixtures, fmt.Sprintf("%d fixture(s) have malformed annotations", count))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *HarnessError {
	return Wrap(ExitConfigError, message, cause)
}

// TestsFailed returns an error for a completed run with failing cases
func TestsFailed(failed, total int) *HarnessError {
	return New(ExitGeneralError, fmt.Sprintf("%d of %d tests failed", failed, total))
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var harnessErr *HarnessError
	if errors.As(err, &harnessErr) {
		return harnessErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
