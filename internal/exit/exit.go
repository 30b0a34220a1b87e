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

// Result is a message to print before the process terminates with ExitCode.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success prints to stdout and exits with CodeSuccess; used for -h.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeSuccess,
		Message:  message,
	}
}

// Error prints to stderr and exits with CodeFailure.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeFailure,
		Message:  message,
	}
}

func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// Code maps the outcome of a run to an exit code.
func Code(failed bool) int {
	if failed {
		return CodeFailure
	}
	return CodeSuccess
}
