// Package manifest reads JAR-style manifests (META-INF/MANIFEST.MF) and
// derives the plugin attributes the catalog filters need: the minimum
// platform version a plugin requires, its minimum Java version, and its
// declared plugin dependencies.
//
// Attribute names are case-insensitive. Values longer than one line use
// the manifest continuation convention: a line starting with a single
// space continues the previous value.
package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/updatecenter/pkg/errors"
)

// Path is the location of the manifest inside a plugin archive.
const Path = "META-INF/MANIFEST.MF"

// Manifest holds the main-section attributes of a manifest.
// The zero value is an empty manifest.
type Manifest struct {
	values map[string]string // lowercased name -> value
	names  map[string]string // lowercased name -> name as written
}

// New builds a Manifest from a name/value map.
func New(attrs map[string]string) Manifest {
	m := Manifest{
		values: make(map[string]string, len(attrs)),
		names:  make(map[string]string, len(attrs)),
	}
	for k, v := range attrs {
		m.set(k, v)
	}
	return m
}

func (m *Manifest) set(name, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
		m.names = make(map[string]string)
	}
	key := strings.ToLower(name)
	m.values[key] = value
	m.names[key] = name
}

// Get returns the value of the named attribute and whether it exists.
func (m Manifest) Get(name string) (string, bool) {
	v, ok := m.values[strings.ToLower(name)]
	return v, ok
}

// Value returns the named attribute, or "" if absent.
func (m Manifest) Value(name string) string {
	v, _ := m.Get(name)
	return v
}

// Len returns the number of attributes.
func (m Manifest) Len() int { return len(m.values) }

// Attributes returns a copy of the attributes keyed by their original names.
func (m Manifest) Attributes() map[string]string {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[m.names[k]] = v
	}
	return out
}

// MarshalJSON encodes the manifest as a flat JSON object.
func (m Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Attributes())
}

// UnmarshalJSON decodes a flat JSON object into the manifest.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var attrs map[string]string
	if err := json.Unmarshal(data, &attrs); err != nil {
		return err
	}
	*m = New(attrs)
	return nil
}

// Parse reads the main section of a manifest. Parsing stops at the first
// blank line; per-entry sections are ignored.
func Parse(r io.Reader) (Manifest, error) {
	var (
		m       Manifest
		name    string
		value   strings.Builder
		lineNum int
	)
	flush := func() {
		if name != "" {
			m.set(name, value.String())
		}
		name = ""
		value.Reset()
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			if name == "" {
				return Manifest{}, errors.New(errors.ErrCodeInvalidFormat, "manifest line %d: continuation without attribute", lineNum)
			}
			value.WriteString(line[1:])
			continue
		}
		flush()
		k, v, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(k) == "" {
			return Manifest{}, errors.New(errors.ErrCodeInvalidFormat, "manifest line %d: missing attribute separator", lineNum)
		}
		name = strings.TrimSpace(k)
		value.WriteString(strings.TrimPrefix(v, " "))
	}
	if err := sc.Err(); err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	flush()
	return m, nil
}

// FromArchive extracts and parses the manifest of a zip archive (.hpi,
// .jpi, .jar or .war) held in memory.
func FromArchive(data []byte) (Manifest, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Manifest{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open archive")
	}
	for _, f := range zr.File {
		if !strings.EqualFold(f.Name, Path) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Manifest{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open %s", Path)
		}
		defer rc.Close()
		return Parse(rc)
	}
	return Manifest{}, errors.New(errors.ErrCodeNotFound, "archive has no %s", Path)
}

// ArchiveEntry returns the contents of the named entry of a zip archive
// held in memory.
func ArchiveEntry(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open archive")
	}
	f, err := zr.Open(name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "archive entry %s", name)
	}
	defer f.Close()
	return io.ReadAll(f)
}
