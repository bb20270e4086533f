// Package validate provides precondition checks for function arguments and state.
//
// Every check takes the name of the value being checked first and returns nil on
// success or a *Error wrapping one of the package sentinels, so callers can branch
// with errors.Is:
//
//	if err := validate.Between("port", port, 1, 65535); err != nil {
//		return err
//	}
//
// Checks compose with All, and call sites where a failure is a programming error
// can use Must, which panics.
package validate
