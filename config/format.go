package config

import (
	"bytes"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format int

const (
	// FormatINI covers INI files and Java-style properties files. Keys
	// outside any section live in the default section.
	FormatINI Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatINI:
		return "ini"
	case FormatYAML:
		return "yaml"
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// FormatForPath picks the format from path's extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties", ".ini", ".conf", ".cfg":
		return FormatINI, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("config: %s: %w", path, ErrUnknownFormat)
}

func decode(data []byte, f Format) (map[string]string, error) {
	switch f {
	case FormatINI:
		return decodeINI(data)
	case FormatYAML:
		return decodeYAML(data)
	}
	return nil, fmt.Errorf("config: decode %v: %w", f, ErrUnknownFormat)
}

func encode(values map[string]string, f Format) ([]byte, error) {
	switch f {
	case FormatINI:
		return encodeINI(values)
	case FormatYAML:
		return encodeYAML(values)
	}
	return nil, fmt.Errorf("config: encode %v: %w", f, ErrUnknownFormat)
}

// decodeINI flattens sections into "section.key".
func decodeINI(data []byte) (map[string]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, fmt.Errorf("config: parse ini: %w", err)
	}
	out := make(map[string]string)
	for _, sec := range f.Sections() {
		prefix := ""
		if sec.Name() != ini.DefaultSection {
			prefix = sec.Name() + "."
		}
		for _, k := range sec.Keys() {
			out[prefix+k.Name()] = k.String()
		}
	}
	return out, nil
}

// encodeINI writes every key into the default section, sorted.
func encodeINI(values map[string]string) ([]byte, error) {
	f := ini.Empty()
	sec := f.Section("")
	for _, k := range slices.Sorted(maps.Keys(values)) {
		if _, err := sec.NewKey(k, values[k]); err != nil {
			return nil, fmt.Errorf("config: key %q: %w", k, err)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeYAML flattens nested mappings into dotted keys. Sequences of
// scalars are joined with commas.
func decodeYAML(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	out := make(map[string]string)
	flatten("", doc, out)
	return out, nil
}

func flatten(prefix string, v any, out map[string]string) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}
	switch x := v.(type) {
	case map[string]any:
		for k, child := range x {
			flatten(join(k), child, out)
		}
	case map[any]any:
		for k, child := range x {
			flatten(join(fmt.Sprint(k)), child, out)
		}
	case []any:
		items := make([]string, len(x))
		for i, item := range x {
			items[i] = formatValue(item)
		}
		out[prefix] = strings.Join(items, ",")
	default:
		if prefix != "" {
			out[prefix] = formatValue(x)
		}
	}
}

// encodeYAML rebuilds nested mappings from dotted keys. A key that is both a
// value and a prefix of other keys keeps the longer keys flat at the level
// where they collide.
func encodeYAML(values map[string]string) ([]byte, error) {
	root := make(map[string]any)
	for _, k := range slices.Sorted(maps.Keys(values)) {
		insert(root, k, values[k])
	}
	if len(root) == 0 {
		return nil, nil
	}
	return yaml.Marshal(root)
}

func insert(m map[string]any, key, value string) {
	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		if _, taken := m[key]; !taken {
			m[key] = value
		}
		return
	}
	switch child := m[head].(type) {
	case nil:
		sub := make(map[string]any)
		m[head] = sub
		insert(sub, rest, value)
	case map[string]any:
		insert(child, rest, value)
	default:
		m[key] = value
	}
}
