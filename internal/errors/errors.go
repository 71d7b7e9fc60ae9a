package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/journeyline/internal/logger"
)

// UserError is a recoverable input problem. It carries an optional hint
// that is printed under the error message.
type UserError struct {
	Msg  string
	Hint string
}

func (e *UserError) Error() string {
	return e.Msg
}

// NewUserError builds a UserError with a hint.
func NewUserError(msg, hint string) error {
	return &UserError{Msg: msg, Hint: hint}
}

// HintFor returns the hint of the first UserError in err's chain, if any.
func HintFor(err error) string {
	var ue *UserError
	if stderrors.As(err, &ue) {
		return ue.Hint
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := HintFor(err); hint != "" {
		msg += "\n  Hint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
