package fileutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/colorhash"
)

// RenameHashedFile renames a file to its content hash with the original extension.
// It returns the new path.
func RenameHashedFile(path string) (string, error) {
	hash, err := GetFileHash(path)
	if err != nil {
		return "", err
	}

	fullName := filepath.Join(filepath.Dir(path), hash+filepath.Ext(path))
	return fullName, os.Rename(path, fullName)
}

// HashFromHashPath extracts the original hash from a store path.
// It expects a name in the format "bucket-subbucket-hash", optionally with an
// extension, and returns the hash portion.
func HashFromHashPath(path string) (string, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, "-")
	if len(parts) != 3 || parts[2] == "" {
		return "", ErrInvalidHashPath
	}
	return parts[2], nil
}

// HashPathFromHash generates a content-addressed name from a hash.
// The result is in the format "bucket-subbucket-hash" (e.g. "742-00000-abc123...").
//
// The bucket is derived from a color hash mod 1000, giving 1000 buckets.
// The subbucket field is always 00000.
func HashPathFromHash(hash string) string {
	bucket := int(colorhash.HashString(hash) % 1000)
	if bucket < 0 {
		bucket = -bucket
	}
	return fmt.Sprintf("%d-%05d-%s", bucket, 0, hash)
}

// StorePrefixFromHashPath returns the store directory for a hash path: the
// bucket and subbucket as nested directories.
func StorePrefixFromHashPath(path string) (string, error) {
	parts := strings.Split(filepath.Base(path), "-")
	if len(parts) < 3 {
		return "", ErrInvalidHashPath
	}
	return filepath.Join(parts[0], parts[1]), nil
}

// GetFileHash hashes a file and returns the hash as a hex string suitable for
// use in a filepath.
func GetFileHash(path string) (hash string, err error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return "", ErrUnexpectedSymlink
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
