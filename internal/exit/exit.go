package exit

import (
	"fmt"
	"io"
	"os"
)

const (
	CodeSuccess = 0
	CodeFailure = 1
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a result that writes message to stdout and exits with 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeSuccess,
		Message:  message,
	}
}

// Error creates a result that writes message to stderr and exits with 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeFailure,
		Message:  message,
	}
}

// Errorf creates an error exit result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// FromError reports err on stderr, or succeeds silently when err is nil.
func FromError(err error) *Result {
	if err == nil {
		return Success("")
	}
	return Errorf("Error: %v\n", err)
}
