// Package errs defines the failure kinds reported by the arithmetic core.
//
// Every error returned by the core carries one of the kinds below as its
// errgo cause, so callers can branch on the kind with [KindOf] regardless of
// how many layers annotated the error on the way up.
package errs

import (
	"context"
	"fmt"

	"gopkg.in/errgo.v1"
)

// Kind is the category of a core failure.
// A Kind is itself an error so it can act as an errgo cause.
type Kind string

const (
	// Parse is returned on malformed numeric, polynomial or expression text.
	Parse Kind = "ParseError"
	// DivisionByZero is returned when dividing by an exact zero.
	DivisionByZero Kind = "DivisionByZeroError"
	// NotInvertible is returned when a modular or polynomial inverse does not exist.
	NotInvertible Kind = "NotInvertibleError"
	// NoSolution is returned when a discrete log or square root does not exist.
	NoSolution Kind = "NoSolutionError"
	// InvalidModulus is returned when a modulus fails the primality,
	// irreducibility or range requirement of an operation.
	InvalidModulus Kind = "InvalidModulusError"
	// InvalidArgument is returned when an operand is outside the domain of an operation.
	InvalidArgument Kind = "InvalidArgumentError"
	// Timeout is returned when the caller's deadline expired before completion.
	Timeout Kind = "TimeoutError"
)

// Error implements the error interface.
func (k Kind) Error() string {
	return string(k)
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) error {
	err := errgo.WithCausef(nil, kind, format, args...)
	if e, ok := err.(*errgo.Err); ok {
		e.SetLocation(1)
	}
	return err
}

// Note annotates err with a message, keeping its kind.
func Note(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	err = errgo.NoteMask(err, fmt.Sprintf(format, args...), errgo.Any)
	if e, ok := err.(*errgo.Err); ok {
		e.SetLocation(1)
	}
	return err
}

// KindOf returns the kind of err.
// Errors that did not originate in the core report an empty Kind.
func KindOf(err error) Kind {
	if k, ok := errgo.Cause(err).(Kind); ok {
		return k
	}
	return ""
}

// Is reports whether err is of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Check returns a Timeout error if ctx is done, and nil otherwise.
// Long-running loops call it periodically.
func Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return New(Timeout, "operation timed out: %v", ctx.Err())
	default:
		return nil
	}
}
