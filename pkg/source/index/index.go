// Package index reads and writes catalog snapshots as JSON index files.
//
// An index lists platform releases and plugin releases with their
// coordinates, digests and, optionally, inline manifest attributes or a
// path to the artifact file relative to the index. Files ending in
// ".zst" are zstd-compressed.
//
//	cat, err := index.Load("plugins.json.zst")
//	...
//	err = index.WriteFile(ctx, filtered, "filtered.json")
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/manifest"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// Default coordinates of platform releases.
const (
	CoreGroupID    = "org.jenkins-ci.main"
	CoreArtifactID = "jenkins-war"
)

// Document is the on-disk index format.
type Document struct {
	Cores   []Entry `json:"cores"`
	Plugins []Entry `json:"plugins"`
}

// Entry is one artifact of an index.
type Entry struct {
	GroupID    string            `json:"groupId,omitempty"`
	ArtifactID string            `json:"artifactId,omitempty"`
	Version    string            `json:"version"`
	Packaging  string            `json:"packaging,omitempty"`
	Timestamp  time.Time         `json:"timestamp,omitzero"`
	SHA1       string            `json:"sha1,omitempty"`
	SHA256     string            `json:"sha256,omitempty"`
	Manifest   map[string]string `json:"manifest,omitempty"`
	File       string            `json:"file,omitempty"`
}

func (e Entry) coordinates(group, artifact, packaging string) catalog.Coordinates {
	c := catalog.Coordinates{GroupID: e.GroupID, ArtifactID: e.ArtifactID, Version: e.Version, Packaging: e.Packaging}
	if c.GroupID == "" {
		c.GroupID = group
	}
	if c.ArtifactID == "" {
		c.ArtifactID = artifact
	}
	if c.Packaging == "" {
		c.Packaging = packaging
	}
	return c
}

// Load reads the index at path into a catalog. Relative artifact file
// paths are resolved against the directory of path.
func Load(path string) (*catalog.Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "index %s", path)
		}
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if isCompressed(path) {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "index %s", path)
		}
		defer zr.Close()
		r = zr
	}
	return Decode(r, filepath.Dir(path))
}

// Decode reads an index document from r. baseDir anchors relative
// artifact file paths.
func Decode(r io.Reader, baseDir string) (*catalog.Memory, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode index")
	}
	return FromDocument(doc, baseDir)
}

// FromDocument builds a catalog from an index document.
func FromDocument(doc Document, baseDir string) (*catalog.Memory, error) {
	m := catalog.NewMemory()

	for _, e := range doc.Cores {
		v, err := version.Parse(e.Version)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "core release %q", e.Version)
		}
		c := e.coordinates(CoreGroupID, CoreArtifactID, catalog.PackagingWAR)
		m.AddPlatformRelease(&catalog.PlatformRelease{Version: v, Coordinates: c, Timestamp: e.Timestamp})
		record(m, c, e, baseDir)
	}

	for _, e := range doc.Plugins {
		if e.ArtifactID == "" || e.Version == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "plugin entry needs artifactId and version")
		}
		c := e.coordinates("", "", catalog.PackagingHPI)
		file := resolvePath(baseDir, e.File)

		var a *catalog.Artifact
		switch {
		case len(e.Manifest) > 0 || file == "":
			a = catalog.NewArtifact(c, func(ctx context.Context) (manifest.Manifest, error) {
				return m.Manifest(ctx, c)
			})
			if len(e.Manifest) > 0 {
				m.SetManifest(c, manifest.New(e.Manifest))
			}
		default:
			a = catalog.NewArtifact(c, archiveManifest(file))
		}
		a.Timestamp = e.Timestamp
		m.AddArtifact(a)
		record(m, c, e, baseDir)
	}
	return m, nil
}

func record(m *catalog.Memory, c catalog.Coordinates, e Entry, baseDir string) {
	if e.SHA1 != "" || e.SHA256 != "" {
		m.SetDigests(c, catalog.Digests{SHA1: e.SHA1, SHA256: e.SHA256})
	}
	if e.File != "" {
		m.SetFile(c, resolvePath(baseDir, e.File))
	}
}

func archiveManifest(path string) catalog.ManifestSource {
	return func(context.Context) (manifest.Manifest, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return manifest.Manifest{}, err
		}
		return manifest.FromArchive(data)
	}
}

func resolvePath(baseDir, file string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(baseDir, file)
}

func isCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".zst")
}
