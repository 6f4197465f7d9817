package errs

import (
	// Stdlib
	"errors"
	"fmt"
	"os"

	// Internal
	"github.com/setup-sda/sda-release/log"
)

var ErrFailed = errors.New("task failed")

// Error represents a failed task. It wraps the underlying error
// and optionally carries a hint for the user, e.g. the stderr output
// of the command that failed.
type Error struct {
	task string
	err  error
	hint string
}

func NewError(task string, err error) *Error {
	return NewErrorWithHint(task, err, "")
}

func NewErrorWithHint(task string, err error, hint string) *Error {
	if err == nil {
		err = ErrFailed
	}
	return &Error{task, err, hint}
}

func (err *Error) Task() string {
	return err.task
}

func (err *Error) Hint() string {
	return err.hint
}

func (err *Error) Err() error {
	return err.err
}

func (err *Error) Error() string {
	return err.err.Error()
}

func (err *Error) Unwrap() error {
	return err.err
}

// Log prints the chain of failed tasks, the innermost task first,
// followed by the hints collected along the way.
func (err *Error) Log(logger log.Logger) {
	logger.Lock()
	defer logger.Unlock()
	err.unsafeLog(logger)
}

func (err *Error) unsafeLog(logger log.Logger) {
	// Log the nested error first.
	if inner, ok := err.err.(*Error); ok {
		inner.unsafeLog(logger)
	}

	logger.UnsafeFail(err.task)
	logger.UnsafeHint(err.hint)
}

// RootCause returns the innermost error that is not an *Error.
func RootCause(err error) error {
	for {
		ex, ok := err.(*Error)
		if !ok {
			return err
		}
		err = ex.err
	}
}

// Log logs the error in case it is an *Error, otherwise it just prints it.
func Log(err error) error {
	LogWith(err, log.V(log.Info))
	return err
}

func LogWith(err error, logger log.Logger) {
	var ex *Error
	if errors.As(err, &ex) {
		ex.Log(logger)
		return
	}
	logger.Fail(err.Error())
}

// LogError is a shortcut for Log(NewError(task, err)).
func LogError(task string, err error) error {
	return Log(NewError(task, err))
}

// Fatal logs the error and exits the process with status 1.
func Fatal(err error) {
	Log(err)
	fmt.Fprintln(os.Stderr, "\nError:", RootCause(err))
	os.Exit(1)
}
