package bitbuf

import "errors"

// Sentinel errors for package bitbuf.
var (
	ErrInvalidCapacity = errors.New("capacity must not be negative")
	ErrBitCount        = errors.New("bit count must be between 0 and 64")
	ErrOverflow        = errors.New("write exceeds buffer capacity")
	ErrUnderflow       = errors.New("read exceeds written bits")
	ErrIndexOutOfRange = errors.New("bit index out of range")
)
