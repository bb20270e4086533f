package fileutil

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ZipDirectory writes the files in src to a new zip archive at dest. Without
// recursive only the files directly inside src are added; with it the whole
// tree is stored under paths relative to src. dest itself is never added.
func ZipDirectory(src, dest string, recursive bool) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrExpectedDirectory
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return err
	}
	os.Remove(dest)
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dest)
		}
	}()
	w := zip.NewWriter(file)

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != src && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == destAbs {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		return addZipEntry(w, path, filepath.ToSlash(rel))
	})
	if err != nil {
		w.Close()
		return fmt.Errorf("fileutil: zip %s: %w", src, err)
	}
	return w.Close()
}

func addZipEntry(w *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate
	writer, err := w.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, f)
	return err
}

// Unzip extracts the archive src into dest. Entries whose names would land
// outside dest fail with ErrUnsafePath before anything is written.
func Unzip(src, dest string) error {
	zrc, err := zip.OpenReader(src)
	if err != nil {
		if zrc != nil {
			zrc.Close()
		}
		return fmt.Errorf("fileutil: unzip %s: %w", src, err)
	}
	defer zrc.Close()

	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return err
	}
	targets := make([]string, len(zrc.File))
	for i, zf := range zrc.File {
		target := filepath.Join(destAbs, filepath.FromSlash(zf.Name))
		if target != destAbs && !strings.HasPrefix(target, destAbs+string(os.PathSeparator)) {
			return fmt.Errorf("fileutil: unzip %s: entry %q: %w", src, zf.Name, ErrUnsafePath)
		}
		targets[i] = target
	}
	for i, zf := range zrc.File {
		if err := extractEntry(zf, targets[i]); err != nil {
			return fmt.Errorf("fileutil: unzip %s: %w", src, err)
		}
	}
	return nil
}

func extractEntry(zf *zip.File, target string) error {
	if zf.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	perm := zf.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// CountZipEntries returns the number of entries in the archive at path.
func CountZipEntries(path string) (int, error) {
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return 0, err
	}
	defer zrc.Close()
	return len(zrc.File), nil
}

// ZipContains reports whether the archive at path has an entry named name.
func ZipContains(path, name string) (bool, error) {
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return false, err
	}
	defer zrc.Close()
	for _, v := range zrc.File {
		if v.Name == name {
			return true, nil
		}
	}
	return false, nil
}
