package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"
)

// ManifestEntry describes one file of a manifest.
type ManifestEntry struct {
	Path     string    `json:"path"`     // path relative to the manifest root
	Hash     string    `json:"hash"`     // SHA-256 of the contents
	Size     int64     `json:"size"`     // size in bytes
	Modified time.Time `json:"modified"` // modification time
}

// Manifest is a list of file entries sorted by path.
type Manifest struct {
	Root    string          `json:"root"`
	Entries []ManifestEntry `json:"entries"`
}

// BuildManifest hashes the regular files below root with a pool of workers
// and returns them sorted by path. Without recursive only the files directly
// inside root are included. Symlinks, and files that vanish during the walk,
// are skipped.
func BuildManifest(root string, recursive bool, workers int) (Manifest, error) {
	if !IsDir(root) {
		return Manifest{}, ErrExpectedDirectory
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	paths := make(chan string, workers)
	entries := make(chan ManifestEntry, workers)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, ErrExpectedFile) || errors.Is(err, ErrUnexpectedSymlink) {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for p := range paths {
				e, err := manifestEntry(root, p)
				if err != nil {
					record(err)
					continue
				}
				entries <- e
			}
		}()
	}

	go func() {
		defer close(paths)
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != root && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			paths <- p
			return nil
		})
		if err != nil {
			record(err)
		}
	}()

	go func() {
		wg.Wait()
		close(entries)
	}()

	m := Manifest{Root: root}
	for e := range entries {
		m.Entries = append(m.Entries, e)
	}
	if firstErr != nil {
		return Manifest{}, firstErr
	}
	m.Sort()
	return m, nil
}

func manifestEntry(root, path string) (ManifestEntry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return ManifestEntry{}, err
	}
	hash, err := GetFileHash(path)
	if err != nil {
		return ManifestEntry{}, err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return ManifestEntry{}, err
	}
	return ManifestEntry{
		Path:     filepath.ToSlash(rel),
		Hash:     hash,
		Size:     info.Size(),
		Modified: info.ModTime(),
	}, nil
}

func (m *Manifest) Sort() {
	slices.SortFunc(m.Entries, func(a, b ManifestEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
}

func (m Manifest) Len() int { return len(m.Entries) }

// Iterate yields the entries in order.
func (m Manifest) Iterate(yield func(ManifestEntry) bool) {
	for _, e := range m.Entries {
		if !yield(e) {
			return
		}
	}
}

// TotalSize returns the summed size of all entries.
func (m Manifest) TotalSize() int64 {
	var total int64
	for e := range m.Iterate {
		total += e.Size
	}
	return total
}

// UniqueCount returns the number of distinct contents.
func (m Manifest) UniqueCount() int {
	seen := make(map[string]struct{})
	for e := range m.Iterate {
		seen[e.Hash] = struct{}{}
	}
	return len(seen)
}

// Duplicates groups the paths of entries sharing a hash. Hashes held by a
// single file are left out.
func (m Manifest) Duplicates() map[string][]string {
	byHash := make(map[string][]string)
	for e := range m.Iterate {
		byHash[e.Hash] = append(byHash[e.Hash], e.Path)
	}
	for h, paths := range byHash {
		if len(paths) < 2 {
			delete(byHash, h)
		}
	}
	return byHash
}

// Newest returns the latest modification time, or the zero time for an
// empty manifest.
func (m Manifest) Newest() time.Time {
	var t time.Time
	for e := range m.Iterate {
		if e.Modified.After(t) {
			t = e.Modified
		}
	}
	return t
}

// Save writes the manifest as indented JSON.
func (m Manifest) Save(path string) error {
	return WriteJSONFile(path, m)
}

func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	err := ReadJSONFile(path, &m)
	return m, err
}
