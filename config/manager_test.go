package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerGetAndSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")
	m, err := NewManager(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	c, err := m.Get("app")
	require.NoError(t, err)
	assert.Zero(t, c.Len())

	again, err := m.Get("app")
	require.NoError(t, err)
	assert.Same(t, c, again)

	c.Set("port", 9000)
	require.NoError(t, m.Save("app"))
	assert.FileExists(t, filepath.Join(dir, "app.properties"))

	fresh, err := NewManager(dir)
	require.NoError(t, err)
	loaded, err := fresh.Get("app")
	require.NoError(t, err)
	assert.Equal(t, 9000, loaded.Int("port", 0))
}

func TestManagerNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "disk.properties"), []byte("a=1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("a: 1\n"), 0o644))

	m, err := NewManager(dir)
	require.NoError(t, err)
	_, err = m.Get("memory")
	require.NoError(t, err)
	_, err = m.Get("disk")
	require.NoError(t, err)

	names, err := m.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"disk", "memory"}, names)
}

func TestManagerInvalidName(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	for _, name := range []string{"", "../x", "a/b", "a b"} {
		_, err := m.Get(name)
		assert.Error(t, err, name)
	}
	assert.ErrorIs(t, m.Save("never-loaded"), ErrNotFound)
}

func TestManagerExtension(t *testing.T) {
	_, err := NewManager(t.TempDir(), WithExtension("json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	dir := t.TempDir()
	m, err := NewManager(dir, WithExtension("yml"))
	require.NoError(t, err)
	c, err := m.Get("svc")
	require.NoError(t, err)
	c.Set("server.port", 1)
	require.NoError(t, m.SaveAll())
	assert.FileExists(t, filepath.Join(dir, "svc.yml"))
}

func TestManagerReloadAndRemove(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)
	c, err := m.Get("app")
	require.NoError(t, err)
	c.Set("k", "old")
	require.NoError(t, m.Save("app"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.properties"), []byte("k = new\n"), 0o644))
	_, err = m.Reload("app")
	require.NoError(t, err)
	assert.Equal(t, "new", c.String("k", ""), "held pointer sees reloaded values")

	require.NoError(t, m.Remove("app", false))
	assert.FileExists(t, filepath.Join(dir, "app.properties"))
	require.NoError(t, m.Remove("app", true))
	assert.NoFileExists(t, filepath.Join(dir, "app.properties"))
	require.NoError(t, m.Remove("app", true))
}

func TestManagerWatch(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)
	c, err := m.Get("live")
	require.NoError(t, err)

	changed := make(chan string, 8)
	m.OnChange(func(name string, cfg *Configuration) {
		if cfg.String("k", "") == "v2" {
			changed <- name
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()

	path := filepath.Join(dir, "live.properties")
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case name := <-changed:
			assert.Equal(t, "live", name)
			break wait
		case <-tick.C:
			// Rewrite until the watcher has been registered and sees it.
			require.NoError(t, os.WriteFile(path, []byte("k = v2\n"), 0o644))
		case <-deadline:
			t.Fatal("no change notification")
		}
	}
	assert.Equal(t, "v2", c.String("k", ""))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
