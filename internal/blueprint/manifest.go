package blueprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/forge-scaffold/forge/internal/defs"
)

// ModuleType is the package.json "type" value every composed manifest carries.
const ModuleType = "module"

// DefaultVersion is the version of a freshly created manifest.
const DefaultVersion = "0.0.0"

// Manifest is the in-memory form of a package.json file.
//
// Fields forge does not manage are kept verbatim and written back on Save.
type Manifest struct {
	Name            string
	Version         string
	Type            string
	Dependencies    map[string]string
	DevDependencies map[string]string
	Scripts         map[string]string

	extra map[string]json.RawMessage
	order []string
}

// NewManifest returns an empty manifest with default name and version.
func NewManifest(name string) *Manifest {
	return &Manifest{
		Name:            name,
		Version:         DefaultVersion,
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
		Scripts:         map[string]string{},
	}
}

// ManifestPath returns the package.json path inside dir.
func ManifestPath(dir string) string {
	return filepath.Join(dir, defs.PackageJSON)
}

// LoadManifest reads dir/package.json. When the file does not exist it
// returns a default manifest named after dir and found is false.
func LoadManifest(dir string) (m *Manifest, found bool, err error) {
	data, err := os.ReadFile(ManifestPath(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return NewManifest(filepath.Base(dir)), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read manifest: %w", err)
	}

	m = &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, true, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, ManifestPath(dir), err)
	}
	if m.Name == "" {
		m.Name = filepath.Base(dir)
	}
	if m.Version == "" {
		m.Version = DefaultVersion
	}
	return m, true, nil
}

// Merge copies the blueprint's declarations into the manifest: dependencies,
// then devDependencies, then scripts. Existing keys are overwritten.
func (m *Manifest) Merge(bp Blueprint) {
	mergeInto(&m.Dependencies, bp.Dependencies)
	mergeInto(&m.DevDependencies, bp.DevDependencies)
	mergeInto(&m.Scripts, bp.Scripts)
}

// HasPackages reports whether any dependency or devDependency is declared.
func (m *Manifest) HasPackages() bool {
	return len(m.Dependencies) > 0 || len(m.DevDependencies) > 0
}

// Save writes the manifest to dir/package.json as 2-space indented JSON.
// The write goes through a temp file and rename.
func (m *Manifest) Save(dir string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return writeFileAtomic(ManifestPath(dir), buf.Bytes(), 0o644)
}

// knownKeys are the managed fields in the order a fresh manifest lists them.
var knownKeys = []string{"name", "version", "type", "dependencies", "devDependencies", "scripts"}

// MarshalJSON implements json.Marshaler. Keys read from a file keep their
// original order. Managed keys the file lacked follow in knownKeys order,
// then any remaining extra keys sorted.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	values := make(map[string]any, len(m.extra)+len(knownKeys))
	for k, v := range m.extra {
		values[k] = v
	}
	values["name"] = m.Name
	values["version"] = m.Version
	if m.Type != "" {
		values["type"] = m.Type
	}
	values["dependencies"] = nonNil(m.Dependencies)
	values["devDependencies"] = nonNil(m.DevDependencies)
	values["scripts"] = nonNil(m.Scripts)

	keys := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	add := func(k string) {
		if _, ok := values[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, k := range m.order {
		add(k)
	}
	for _, k := range knownKeys {
		add(k)
	}
	rest := make([]string, 0, len(m.extra))
	for k := range m.extra {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	for _, k := range rest {
		add(k)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		if err := enc.Encode(values[k]); err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	order, err := topLevelKeys(data)
	if err != nil {
		return err
	}

	fields := []struct {
		key string
		dst any
	}{
		{"name", &m.Name},
		{"version", &m.Version},
		{"type", &m.Type},
		{"dependencies", &m.Dependencies},
		{"devDependencies", &m.DevDependencies},
		{"scripts", &m.Scripts},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return fmt.Errorf("field %q: %w", f.key, err)
		}
		delete(raw, f.key)
	}

	m.Dependencies = nonNil(m.Dependencies)
	m.DevDependencies = nonNil(m.DevDependencies)
	m.Scripts = nonNil(m.Scripts)
	m.extra = raw
	m.order = order
	return nil
}

// topLevelKeys returns the keys of the JSON object in data in file order.
func topLevelKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}

func mergeInto(dst *map[string]string, src map[string]string) {
	if *dst == nil {
		*dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		(*dst)[k] = v
	}
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".forge-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}

	success = true
	return nil
}
