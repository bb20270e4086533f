// Package config stores flat key-value configuration loaded from properties,
// INI or YAML files, and manages a directory of named configurations with
// live reload.
//
// Keys are case-sensitive. Nested structure is flattened into dotted keys:
// the INI key "port" in section "server" and the YAML mapping
// server: {port: 8080} both become "server.port".
package config

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dendrascience/utilkit/fileutil"
)

// Configuration is a thread-safe flat key-value store.
type Configuration struct {
	mu     sync.RWMutex
	values map[string]string
	path   string
}

// New returns an empty configuration.
func New() *Configuration {
	return &Configuration{values: make(map[string]string)}
}

// Load reads the file at path, choosing the format from its extension.
func Load(path string) (*Configuration, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	c.path = path
	return c, nil
}

// Parse decodes data in format f.
func Parse(data []byte, f Format) (*Configuration, error) {
	values, err := decode(data, f)
	if err != nil {
		return nil, err
	}
	return &Configuration{values: values}, nil
}

// Path returns the file this configuration was loaded from or last saved to.
func (c *Configuration) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Get returns the raw value for key.
func (c *Configuration) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// String returns the value for key, or def when it is missing.
func (c *Configuration) String(key, def string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// lookup returns the trimmed value for key and whether it is set and non-empty.
func (c *Configuration) lookup(key string) (string, bool) {
	v, ok := c.Get(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Int returns the value for key as an int, or def when it is missing or
// malformed.
func (c *Configuration) Int(key string, def int) int {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (c *Configuration) Int64(key string, def int64) int64 {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func (c *Configuration) Float(key string, def float64) float64 {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Bool accepts the strconv.ParseBool forms plus yes/no and on/off.
func (c *Configuration) Bool(key string, def bool) bool {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "yes", "y", "on":
		return true
	case "no", "n", "off":
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Duration parses values such as "1m30s".
func (c *Configuration) Duration(key string, def time.Duration) time.Duration {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// Bytes parses sizes such as "64 MiB" or "1.5GB".
func (c *Configuration) Bytes(key string, def uint64) uint64 {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	n, err := humanize.ParseBytes(v)
	if err != nil {
		return def
	}
	return n
}

// Strings splits a comma-separated value, trimming items and dropping empty
// ones. A missing key yields nil.
func (c *Configuration) Strings(key string) []string {
	v, ok := c.Get(key)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Set stores value under key. Slices of strings are joined with commas.
func (c *Configuration) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = formatValue(value)
}

// SetDefault stores value only when key is missing. It reports whether it
// stored anything.
func (c *Configuration) SetDefault(key string, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; ok {
		return false
	}
	c.values[key] = formatValue(value)
	return true
}

// Remove deletes key and reports whether it was present.
func (c *Configuration) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	delete(c.values, key)
	return ok
}

func (c *Configuration) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Keys returns all keys sorted.
func (c *Configuration) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.values))
}

func (c *Configuration) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// Map returns a copy of all values.
func (c *Configuration) Map() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.values)
}

// Merge copies every value of other into c, overwriting existing keys.
func (c *Configuration) Merge(other *Configuration) {
	if other == nil || other == c {
		return
	}
	src := other.Map()
	c.mu.Lock()
	defer c.mu.Unlock()
	maps.Copy(c.values, src)
}

// Clone returns an independent copy with the same path.
func (c *Configuration) Clone() *Configuration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Configuration{values: maps.Clone(c.values), path: c.path}
}

// Sub returns the keys under prefix with "prefix." stripped.
func (c *Configuration) Sub(prefix string) *Configuration {
	p := strings.TrimSuffix(prefix, ".") + "."
	out := New()
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, v := range c.values {
		if rest, ok := strings.CutPrefix(k, p); ok && rest != "" {
			out.values[rest] = v
		}
	}
	return out
}

// replace swaps in new values, keeping the pointer valid for holders.
func (c *Configuration) replace(values map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = values
}

// Save writes the configuration to path in the format chosen by its
// extension. An empty path reuses Path().
func (c *Configuration) Save(path string) error {
	if path == "" {
		path = c.Path()
	}
	if path == "" {
		return ErrNoPath
	}
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}
	data, err := encode(c.Map(), f)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return err
	}
	c.mu.Lock()
	c.path = path
	c.mu.Unlock()
	return nil
}

// WriteTo writes the configuration in INI format.
func (c *Configuration) WriteTo(w io.Writer) (int64, error) {
	data, err := encodeINI(c.Map())
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ",")
	case time.Duration:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
