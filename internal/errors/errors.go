package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/mealframe/internal/logger"
)

// Process exit codes.
const (
	ExitFailure = 1
	// ExitUsage is returned when the user supplied invalid input, such as an out-of-range window.
	ExitUsage = 2
)

// ExitCoder is implemented by errors that carry their own exit code.
type ExitCoder interface {
	ExitCode() int
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// ExitCode returns the exit code for err: 0 for nil, the code of the first
// ExitCoder in its chain, or ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if stderrors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitFailure
}

// Fatal logs an error and exits the program with its exit code
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(ExitFailure)
}
