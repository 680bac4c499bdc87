package argv

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

const (
	msgMissingArguments = "Missing mandatory argument(s)"
	msgTooManyArguments = "Too many arguments"
	msgMissingCommand   = "Missing command"
)

// DefinitionError is an author mistake in the definition. It is never caused by user input.
type DefinitionError struct {
	Message string
}

func newDefinitionError(message string) error {
	return &DefinitionError{Message: message}
}

func (e *DefinitionError) Error() string {
	return "invalid definition: " + e.Message
}

// InvalidCommandError is returned when the command token is missing or unknown.
type InvalidCommandError struct {
	Message       string
	ValidCommands []string
}

func (e *InvalidCommandError) Error() string {
	return e.Message
}

// ArgumentError reports wrong positional arguments or option values.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// InvalidOptionError is returned for a dash token that matches no registered option.
type InvalidOptionError struct {
	Option string
}

func (e *InvalidOptionError) Error() string {
	return "invalid option: " + e.Option
}

// InvalidValueError is returned when an option converter rejects a value.
type InvalidValueError struct {
	Option string
	Value  string
	Cause  error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid argument: %s %s (%s)", e.Option, e.Value, e.Cause)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Cause
}

// IsDefinitionError reports whether err is caused by the definition.
func IsDefinitionError(err error) bool {
	var target *DefinitionError
	return errors.As(err, &target)
}

// IsInvalidCommand reports whether err is an *InvalidCommandError.
func IsInvalidCommand(err error) bool {
	var target *InvalidCommandError
	return errors.As(err, &target)
}

// IsArgumentError reports whether err is an *ArgumentError.
func IsArgumentError(err error) bool {
	var target *ArgumentError
	return errors.As(err, &target)
}

// IsInvalidOption reports whether err is an *InvalidOptionError.
func IsInvalidOption(err error) bool {
	var target *InvalidOptionError
	return errors.As(err, &target)
}

// IsInvalidValue reports whether err is an *InvalidValueError.
func IsInvalidValue(err error) bool {
	var target *InvalidValueError
	return errors.As(err, &target)
}

// IsUserError reports whether err was caused by the decoded tokens.
func IsUserError(err error) bool {
	return IsInvalidCommand(err) || IsArgumentError(err) || IsInvalidOption(err) || IsInvalidValue(err)
}
