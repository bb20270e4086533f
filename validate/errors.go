package validate

import (
	"errors"
	"fmt"
)

// Sentinel errors for package validate.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Presence errors
	ErrNil        = errors.New("must not be nil")
	ErrNilElement = errors.New("must not contain nil elements")
	ErrEmpty      = errors.New("must not be empty")
	ErrBlank      = errors.New("must not be blank")

	// Numeric errors
	ErrOutOfRange  = errors.New("out of range")
	ErrNotPositive = errors.New("must be positive")
	ErrNegative    = errors.New("must not be negative")
	ErrNotFinite   = errors.New("must be finite")

	// Index errors
	ErrInvalidIndex = errors.New("invalid index")

	// Generic contract errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIllegalState    = errors.New("illegal state")
	ErrPattern         = errors.New("does not match pattern")
)

// Error describes a failed check on a named value.
type Error struct {
	Name   string // name of the checked argument, empty for state checks
	Reason string // human readable detail
	Err    error  // one of the package sentinels
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Reason
	}
	return e.Name + ": " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(name string, sentinel error, format string, args ...any) error {
	reason := sentinel.Error()
	if format != "" {
		reason = fmt.Sprintf(format, args...)
	}
	return &Error{Name: name, Reason: reason, Err: sentinel}
}
