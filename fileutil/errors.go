package fileutil

import "errors"

// Sentinel errors for package fileutil.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")
	ErrUnexpectedSymlink = errors.New("expected file, got symlink")

	// Hash path errors
	ErrInvalidHashPath = errors.New("invalid hash path format")

	// Archive errors
	ErrUnsafePath = errors.New("archive entry escapes destination")

	// Codec errors
	ErrUnknownCodec = errors.New("unknown compression codec")
)
