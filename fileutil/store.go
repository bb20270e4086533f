package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var storeLock sync.Mutex

// CopyToStore copies the file at path into storeDir under its content
// address, storeDir/<bucket>/<subbucket>/<bucket-subbucket-hash><ext>, and
// returns the stored path. Storing the same content twice is a no-op.
func CopyToStore(path, storeDir string) (string, error) {
	hash, err := GetFileHash(path)
	if err != nil {
		return "", err
	}
	name := HashPathFromHash(hash) + filepath.Ext(path)
	prefix, err := StorePrefixFromHashPath(name)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(storeDir, prefix)
	dest := filepath.Join(dir, name)

	storeLock.Lock()
	defer storeLock.Unlock()

	if Exists(dest) {
		return dest, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("fileutil: create store dir %s: %w", dir, err)
	}
	if err := CopyFile(path, dest); err != nil {
		return "", err
	}
	return dest, nil
}
