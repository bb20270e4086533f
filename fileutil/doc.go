// Package fileutil provides file and directory helpers for utilkit.
//
// Key Components:
//
// Files and Directories:
//   - Existence and size checks, line-oriented reads and writes
//   - Atomic writes through a uuid-named temporary file and rename
//   - Copy and move helpers that preserve file modes
//
// Content Addressing:
//   - SHA-256 file hashing
//   - "bucket-subbucket-hash" store paths with a color hash bucket (1000 buckets)
//   - CopyToStore for idempotent content-addressed copies
//
// Archives and Codecs:
//   - ZIP creation and extraction with path traversal checks
//   - gzip, zstd and lz4 stream codecs selected by name or file extension
//
// Directory Analysis:
//   - Recursive file counting with an early stop once a limit is passed
//   - Total size of a directory tree
package fileutil
