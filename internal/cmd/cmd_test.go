package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/utilkit/fileutil"
)

const helloHash = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHashCmd(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "hello.txt"), "hello")

	out, err := run(t, "hash", file)
	require.NoError(t, err)
	assert.Equal(t, helloHash+"  "+file+"\n", out)

	out, err = run(t, "hash", "--bucketed", file)
	require.NoError(t, err)
	assert.Contains(t, out, "-00000-"+helloHash)

	_, err = run(t, "hash", t.TempDir())
	assert.Error(t, err)
}

func TestStoreAndVerify(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "store")
	a := writeFile(t, filepath.Join(dir, "a.txt"), "hello")
	b := writeFile(t, filepath.Join(dir, "b.txt"), "world")

	out, err := run(t, "hash", "--store", store, a, b)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	stored := strings.Fields(lines[0])[0]
	assert.FileExists(t, stored)

	out, err = run(t, "verify", store)
	require.NoError(t, err)
	assert.Contains(t, out, "Files checked: 2")
	assert.Contains(t, out, "Problems: 0")

	require.NoError(t, os.WriteFile(stored, []byte("tampered"), 0o644))
	_, err = run(t, "verify", store)
	assert.Error(t, err)

	out, err = run(t, "verify", "--repair", store)
	require.NoError(t, err)
	assert.Contains(t, out, "re-stored as")
	assert.NoFileExists(t, stored)

	_, err = run(t, "verify", store)
	assert.NoError(t, err)
}

func TestCompressCmds(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "data.txt"), strings.Repeat("utilkit ", 500))

	for _, codec := range []string{"gzip", "zstd", "lz4"} {
		t.Run(codec, func(t *testing.T) {
			packed := filepath.Join(dir, "packed-"+codec)
			out, err := run(t, "compress", "--codec", codec, src, packed+map[string]string{"gzip": ".gz", "zstd": ".zst", "lz4": ".lz4"}[codec])
			require.NoError(t, err)
			assert.Contains(t, out, "->")

			files, err := filepath.Glob(packed + ".*")
			require.NoError(t, err)
			require.Len(t, files, 1)

			_, err = run(t, "decompress", files[0])
			require.NoError(t, err)
			got, err := os.ReadFile(packed)
			require.NoError(t, err)
			assert.Equal(t, strings.Repeat("utilkit ", 500), string(got))
		})
	}
}

func TestCompressUnknownCodec(t *testing.T) {
	src := writeFile(t, filepath.Join(t.TempDir(), "data.txt"), "data")
	_, err := run(t, "compress", "--codec", "brotli", src)
	require.Error(t, err)
	assert.ErrorIs(t, err, fileutil.ErrUnknownCodec)
	assert.Contains(t, err.Error(), `invalid --codec "brotli"`)
	assert.NoFileExists(t, src+".br")
}

func TestZipCmds(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "a.txt"), "a")
	writeFile(t, filepath.Join(src, "sub", "b.txt"), "b")
	archive := filepath.Join(dir, "out.zip")

	out, err := run(t, "zip", "-r", src, archive)
	require.NoError(t, err)
	assert.Contains(t, out, "2 entries")

	dest := filepath.Join(dir, "dest")
	_, err = run(t, "unzip", archive, dest)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "sub", "b.txt"))
}

func TestCountCmd(t *testing.T) {
	dir := t.TempDir()
	for i := range 12 {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("d%d", i%3), fmt.Sprintf("f%d", i)), "12345")
	}

	out, err := run(t, "count", dir, "--size")
	require.NoError(t, err)
	assert.Equal(t, "Total files: 12\nTotal size: 60 B\n", out)

	out, err = run(t, "count", "--path", dir, "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, "More than 5 files\n", out)

	out, err = run(t, "count", dir, "--progress")
	require.NoError(t, err)
	assert.Equal(t, "Total files: 12\n", out)
}

func TestConfigCmd(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.yaml")

	_, err := run(t, "config", "set", file, "server.port", "8080")
	require.NoError(t, err)
	_, err = run(t, "config", "set", file, "server.host", "localhost")
	require.NoError(t, err)
	_, err = run(t, "config", "set", file, "name", "demo")
	require.NoError(t, err)

	out, err := run(t, "config", "get", file, "server.port")
	require.NoError(t, err)
	assert.Equal(t, "8080\n", out)

	out, err = run(t, "config", "list", file)
	require.NoError(t, err)
	assert.Equal(t, "name = demo\nserver.host = localhost\nserver.port = 8080\n", out)

	out, err = run(t, "config", "list", file, "server")
	require.NoError(t, err)
	assert.Equal(t, "host = localhost\nport = 8080\n", out)

	_, err = run(t, "config", "unset", file, "name")
	require.NoError(t, err)
	_, err = run(t, "config", "get", file, "name")
	assert.Error(t, err)
	_, err = run(t, "config", "unset", file, "name")
	assert.Error(t, err)
}

func TestSVGCmd(t *testing.T) {
	out, err := run(t, "svg", "grid", "--cols", "3", "--rows", "2", "--rotate", "15")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Equal(t, 3*2+1, strings.Count(out, "<rect"))
	assert.Contains(t, out, "transform=")

	file := filepath.Join(t.TempDir(), "r.svg")
	out, err = run(t, "svg", "rect", "--fill", "#ff0000", "-o", file)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+file+"\n", out)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `fill="#ff0000"`)

	_, err = run(t, "svg", "rect", "--fill", "red")
	assert.Error(t, err)
	_, err = run(t, "svg", "grid", "--cols", "0")
	assert.Error(t, err)
}

func TestDownloadCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "payload")
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "one.bin")
	_, err := run(t, "download", "-q", "-o", dest, srv.URL+"/file.bin")
	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	many := filepath.Join(dir, "many")
	_, err = run(t, "download", "-o", many, "--rate", "1MiB", srv.URL+"/x.txt", srv.URL+"/y.txt?v=1")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(many, "x.txt"))
	assert.FileExists(t, filepath.Join(many, "y.txt"))

	_, err = run(t, "download", "-o", filepath.Join(dir, "bad"), srv.URL+"/missing")
	assert.Error(t, err)
	_, err = run(t, "download", "--rate", "fast", srv.URL+"/x")
	assert.Error(t, err)
}

func TestNameFromURL(t *testing.T) {
	tests := map[string]string{
		"https://example.com/a/b.tar.gz?x=1": "b.tar.gz",
		"https://example.com/":               "download",
		"https://example.com":                "download",
		"::bad":                              "download",
	}
	for in, want := range tests {
		assert.Equal(t, want, nameFromURL(in), in)
	}
}

func TestSeedAndManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "seeded")
	out, err := run(t, "seed", "-o", dir, "-c", "40", "--pool", "5", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 40 files")

	out, err = run(t, "count", dir)
	require.NoError(t, err)
	assert.Equal(t, "Total files: 40\n", out)

	manifest := filepath.Join(t.TempDir(), "m.json")
	out, err = run(t, "manifest", dir, "--dupes", "-o", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "Files: 40\n")
	assert.Contains(t, out, "Distinct contents: ")
	assert.FileExists(t, manifest)
}

func TestSeedReproducible(t *testing.T) {
	tree := func(seed string) map[string]string {
		dir := filepath.Join(t.TempDir(), "seeded")
		_, err := run(t, "seed", "-o", dir, "-c", "20", "--pool", "3", "--seed", seed)
		require.NoError(t, err)
		m, err := fileutil.BuildManifest(dir, true, 2)
		require.NoError(t, err)
		hashes := make(map[string]string)
		for e := range m.Iterate {
			hashes[e.Path] = e.Hash
		}
		return hashes
	}

	a, b := tree("7"), tree("7")
	assert.Len(t, a, 20)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, tree("8"))
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "utilkit version "))

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"go_version"`)
}

func TestLogLevelFlag(t *testing.T) {
	_, err := run(t, "--log-level", "nonsense", "version")
	assert.Error(t, err)
	_, err = run(t, "--verbose", "version")
	assert.NoError(t, err)
}
