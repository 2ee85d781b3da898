// Package atlaserrors contains generic errors returned while generating and submitting jobs.
// The command-line entrypoint looks for the error types defined in this file and sets the process
// exit code accordingly.
//
// If multiple errors occur in some function (e.g., if several fields of a job descriptor are invalid),
// that function should return an error of type multierror.Error from package
// github.com/hashicorp/go-multierror that encapsulates those individual errors.
package atlaserrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Process exit codes returned by ExitCodeFromError.
const (
	ExitOK              = 0
	ExitUnknown         = 1
	ExitInvalidArgument = 2
	ExitNotFound        = 3
	ExitParse           = 4
)

// ErrInvalidArgument is a generic error to be returned on invalid argument.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the field referred to, e.g., "maxArraySize"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message to include with the error message, e.g., explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", fmt.Sprint(err.Value), err.Name)
	} else {
		return fmt.Sprintf("value %q is invalid for field %q; %s", fmt.Sprint(err.Value), err.Name, err.Message)
	}
}

// ErrNotFound is a generic error to be returned whenever some resource isn't found.
// Type and Message are optional and are omitted from the error message if not provided.
type ErrNotFound struct {
	Type    string // Resource type, e.g., "column" or "file"
	Value   string // Resource name, e.g., "toi_numbers"
	Message string // An optional message to include in the error message
}

func (err *ErrNotFound) Error() (s string) {
	if err.Type != "" {
		s = fmt.Sprintf("resource %q of type %q does not exist", err.Value, err.Type)
	} else {
		s = fmt.Sprintf("resource %q does not exist", err.Value)
	}
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	} else {
		return s
	}
}

// ErrParse is returned when a value read from the filesystem or a data source cannot be parsed.
// Such errors mean the input can't be trusted and the run must not continue.
type ErrParse struct {
	Source  string // Where the value came from, e.g., a file path
	Value   string // The text that failed to parse
	Message string
}

func (err *ErrParse) Error() string {
	s := fmt.Sprintf("could not parse %q from %s", err.Value, err.Source)
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	}
	return s
}

// ExitCodeFromError maps error types to process exit codes.
// Uses errors.As to look through the chain of errors, as opposed to just considering the topmost error in the chain.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitOK
	}
	{
		var e *ErrInvalidArgument
		if errors.As(err, &e) {
			return ExitInvalidArgument
		}
	}
	{
		var e *ErrNotFound
		if errors.As(err, &e) {
			return ExitNotFound
		}
	}
	{
		var e *ErrParse
		if errors.As(err, &e) {
			return ExitParse
		}
	}
	return ExitUnknown
}
