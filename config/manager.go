package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dendrascience/utilkit/validate"
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ChangeFunc is called after a managed configuration was reloaded from disk.
type ChangeFunc func(name string, cfg *Configuration)

// Manager keeps a directory of named configurations, one file per name.
type Manager struct {
	dir    string
	ext    string
	logger *zap.Logger

	mu        sync.Mutex
	configs   map[string]*Configuration
	callbacks []ChangeFunc
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithExtension sets the file extension of managed files. The default is
// ".properties".
func WithExtension(ext string) ManagerOption {
	return func(m *Manager) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		m.ext = ext
	}
}

func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager returns a Manager for dir, creating the directory if needed.
func NewManager(dir string, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		dir:     dir,
		ext:     ".properties",
		logger:  zap.NewNop(),
		configs: make(map[string]*Configuration),
	}
	for _, opt := range opts {
		opt(m)
	}
	if _, err := FormatForPath(m.ext); err != nil {
		return nil, fmt.Errorf("config: extension %q: %w", m.ext, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("config: create %s: %w", dir, err)
	}
	return m, nil
}

func (m *Manager) Dir() string { return m.dir }

func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name+m.ext)
}

// Get returns the configuration called name, loading it on first use. A
// missing file yields an empty configuration that Save will create.
func (m *Manager) Get(name string) (*Configuration, error) {
	if err := validate.Matches("name", name, nameRe); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.configs[name]; ok {
		return c, nil
	}
	path := m.path(name)
	c, err := Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c = New()
		c.path = path
	case err != nil:
		return nil, err
	default:
		m.logger.Debug("loaded configuration", zap.String("name", name), zap.Int("keys", c.Len()))
	}
	m.configs[name] = c
	return c, nil
}

func (m *Manager) cached(name string) (*Configuration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.configs[name]
	if !ok {
		return nil, fmt.Errorf("config: %s: %w", name, ErrNotFound)
	}
	return c, nil
}

// Save writes a loaded configuration back to its file.
func (m *Manager) Save(name string) error {
	c, err := m.cached(name)
	if err != nil {
		return err
	}
	if err := c.Save(m.path(name)); err != nil {
		return err
	}
	m.logger.Debug("saved configuration", zap.String("name", name))
	return nil
}

// SaveAll saves every loaded configuration, returning all failures joined.
func (m *Manager) SaveAll() error {
	var errs []error
	for _, name := range m.loaded() {
		if err := m.Save(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reload rereads name from disk into the cached configuration, so pointers
// returned earlier by Get observe the new values.
func (m *Manager) Reload(name string) (*Configuration, error) {
	c, err := m.Get(name)
	if err != nil {
		return nil, err
	}
	fresh, err := Load(m.path(name))
	if err != nil {
		return nil, err
	}
	c.replace(fresh.Map())
	return c, nil
}

// Remove forgets name and, when deleteFile is set, removes its file.
func (m *Manager) Remove(name string, deleteFile bool) error {
	if err := validate.Matches("name", name, nameRe); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.configs, name)
	m.mu.Unlock()
	if !deleteFile {
		return nil
	}
	if err := os.Remove(m.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (m *Manager) loaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.configs))
}

// Names lists loaded configurations and files on disk, sorted.
func (m *Manager) Names() ([]string, error) {
	names := m.loaded()
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if name, ok := m.managedName(e.Name()); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// managedName returns the configuration name for a file in dir.
func (m *Manager) managedName(file string) (string, bool) {
	name, ok := strings.CutSuffix(file, m.ext)
	if !ok || !nameRe.MatchString(name) {
		return "", false
	}
	return name, true
}

// OnChange registers fn to run after Watch reloads a configuration.
func (m *Manager) OnChange(fn ChangeFunc) {
	m.mu.Lock()
	m.callbacks = append(m.callbacks, fn)
	m.mu.Unlock()
}

func (m *Manager) notify(name string, c *Configuration) {
	m.mu.Lock()
	cbs := slices.Clone(m.callbacks)
	m.mu.Unlock()
	for _, fn := range cbs {
		fn(name, c)
	}
}

// Watch reloads configurations when their files are written or created in
// the managed directory. It blocks until ctx is done.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(m.dir); err != nil {
		return fmt.Errorf("config: watch %s: %w", m.dir, err)
	}
	m.logger.Info("watching configuration directory", zap.String("dir", m.dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, ok := m.managedName(filepath.Base(event.Name))
			if !ok {
				continue
			}
			c, err := m.Reload(name)
			if err != nil {
				// Writers that truncate first can leave a half-written file;
				// the next write event reloads it again.
				m.logger.Warn("reload failed", zap.String("name", name), zap.Error(err))
				continue
			}
			m.logger.Info("reloaded configuration", zap.String("name", name), zap.Int("keys", c.Len()))
			m.notify(name, c)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
