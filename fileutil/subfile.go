package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
)

// CountFiles counts the files below path. Counting stops as soon as the count
// passes limit, in which case over is true and count is limit+1. A limit of
// zero or less counts everything.
func CountFiles(path string, limit int) (count int, over bool, err error) {
	if limit <= 0 {
		limit = -1
	}
	return countFiles(path, limit)
}

// countFiles treats a negative limit as unlimited.
func countFiles(path string, limit int) (count int, over bool, err error) {
	var info os.FileInfo
	info, err = os.Stat(path)
	if err != nil {
		return
	}
	if !info.IsDir() {
		err = ErrExpectedDirectory
		return
	}
	var files []os.DirEntry
	files, err = os.ReadDir(path)
	if err != nil {
		return
	}
	for _, f := range files {
		if !f.IsDir() {
			count++
			if limit >= 0 && count > limit {
				return count, true, nil
			}
			continue
		}
		remaining := -1
		if limit >= 0 {
			remaining = limit - count
		}
		c, o, e := countFiles(filepath.Join(path, f.Name()), remaining)
		count += c
		if o {
			return count, true, nil
		}
		if e != nil {
			return count, false, e
		}
	}
	return
}

// DirSize returns the total size in bytes of the regular files below path.
func DirSize(path string) (int64, error) {
	var total int64
	err := WalkFiles(path, func(_ string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
