package config

import "errors"

// Sentinel errors for package config.
var (
	ErrUnknownFormat = errors.New("unknown configuration format")
	ErrNoPath        = errors.New("configuration has no file path")
	ErrNotFound      = errors.New("configuration not found")
)
