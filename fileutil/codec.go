package fileutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec names a stream compression format.
type Codec string

const (
	Gzip Codec = "gzip"
	Zstd Codec = "zstd"
	LZ4  Codec = "lz4"
)

var codecExts = map[Codec]string{
	Gzip: ".gz",
	Zstd: ".zst",
	LZ4:  ".lz4",
}

// ParseCodec maps a codec name to a Codec. Common aliases are accepted.
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst", "zstandard":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	}
	return "", fmt.Errorf("fileutil: codec %q: %w", name, ErrUnknownCodec)
}

// CodecForPath picks the codec from path's extension.
func CodecForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for c, e := range codecExts {
		if e == ext {
			return c, nil
		}
	}
	return "", fmt.Errorf("fileutil: codec for %s: %w", path, ErrUnknownCodec)
}

// Ext returns the file extension for c, including the dot.
func (c Codec) Ext() string { return codecExts[c] }

func (c Codec) String() string { return string(c) }

// NewCompressor wraps w so that writes are compressed with c. The returned
// writer must be closed to flush the stream; closing it does not close w.
func NewCompressor(w io.Writer, c Codec) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("fileutil: compressor %q: %w", c, ErrUnknownCodec)
}

// NewDecompressor wraps r so that reads are decompressed with c.
func NewDecompressor(r io.Reader, c Codec) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, fmt.Errorf("fileutil: decompressor %q: %w", c, ErrUnknownCodec)
}

// CompressBytes compresses data in memory.
func CompressBytes(data []byte, c Codec) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewCompressor(&buf, c)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressBytes reverses CompressBytes.
func DecompressBytes(data []byte, c Codec) ([]byte, error) {
	r, err := NewDecompressor(bytes.NewReader(data), c)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// CompressFile compresses src into dst with c. An empty dst means src plus
// the codec extension. It returns the path written.
func CompressFile(src, dst string, c Codec) (string, error) {
	if _, ok := codecExts[c]; !ok {
		return "", fmt.Errorf("fileutil: compress %s: %w", src, ErrUnknownCodec)
	}
	if dst == "" {
		dst = src + c.Ext()
	}
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	err = writeStream(dst, func(w io.Writer) error {
		cw, err := NewCompressor(w, c)
		if err != nil {
			return err
		}
		if _, err := io.Copy(cw, in); err != nil {
			cw.Close()
			return err
		}
		return cw.Close()
	})
	if err != nil {
		return "", fmt.Errorf("fileutil: compress %s: %w", src, err)
	}
	return dst, nil
}

// DecompressFile decompresses src, choosing the codec from src's extension.
// An empty dst means src without that extension. It returns the path written.
func DecompressFile(src, dst string) (string, error) {
	c, err := CodecForPath(src)
	if err != nil {
		return "", err
	}
	if dst == "" {
		dst = strings.TrimSuffix(src, filepath.Ext(src))
	}
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	err = writeStream(dst, func(w io.Writer) error {
		r, err := NewDecompressor(in, c)
		if err != nil {
			return err
		}
		defer r.Close()
		_, err = io.Copy(w, r)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("fileutil: decompress %s: %w", src, err)
	}
	return dst, nil
}

// writeStream creates path and hands it to fn, removing it if fn fails.
func writeStream(path string, fn func(io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	err = fn(out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
	}
	return err
}
