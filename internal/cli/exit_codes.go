package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/verlog/internal/errors"
)

// Exit codes for the verlog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitCheckFailed indicates at least one resource failed to load, or a
	// runtime failure such as an unwritable output file
	ExitCheckFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigError indicates invalid configuration or a missing source/page
	ExitConfigError = 4
)

// ExitError carries an exit code for a failure that was already reported.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr.Category.ExitCode()
	}
	return ExitCheckFailed
}
