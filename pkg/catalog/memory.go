package catalog

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/manifest"
)

// Memory is a Catalog held entirely in memory. It backs the index
// source and is convenient in tests. It is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	platform  *PlatformReleases
	plugins   []*PluginHistory
	byID      map[string]*PluginHistory
	manifests map[Coordinates]manifest.Manifest
	digests   map[Coordinates]Digests
	entries   map[Coordinates]map[string][]byte
	files     map[Coordinates]string
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{
		platform:  NewPlatformReleases(),
		byID:      make(map[string]*PluginHistory),
		manifests: make(map[Coordinates]manifest.Manifest),
		digests:   make(map[Coordinates]Digests),
		entries:   make(map[Coordinates]map[string][]byte),
		files:     make(map[Coordinates]string),
	}
}

// AddPlatformRelease records a platform release.
func (m *Memory) AddPlatformRelease(r *PlatformRelease) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.platform.Put(r)
}

// AddPlugin records a plugin release whose manifest is read from this
// catalog. Plugins keep the order in which they were first added.
func (m *Memory) AddPlugin(c Coordinates, mf manifest.Manifest) *Artifact {
	a := NewArtifact(c, func(ctx context.Context) (manifest.Manifest, error) {
		return m.Manifest(ctx, c)
	})
	m.mu.Lock()
	if mf.Len() > 0 {
		m.manifests[c] = mf
	}
	m.mu.Unlock()
	m.AddArtifact(a)
	return a
}

// AddArtifact records a plugin release that resolves its own manifest.
func (m *Memory) AddArtifact(a *Artifact) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.byID[a.ID()]
	if !ok {
		h = &PluginHistory{ID: a.ID()}
		m.byID[a.ID()] = h
		m.plugins = append(m.plugins, h)
	}
	h.Add(a)
}

// SetDigests records the checksums of an artifact.
func (m *Memory) SetDigests(c Coordinates, d Digests) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digests[c] = d
}

// SetManifest records the manifest of an artifact.
func (m *Memory) SetManifest(c Coordinates, mf manifest.Manifest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manifests[c] = mf
}

// SetZipEntry records the content of one archive entry.
func (m *Memory) SetZipEntry(c Coordinates, path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries[c] == nil {
		m.entries[c] = make(map[string][]byte)
	}
	m.entries[c][path] = data
}

// SetFile records the local path of an artifact.
func (m *Memory) SetFile(c Coordinates, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[c] = path
}

// PlatformReleases implements Catalog.
func (m *Memory) PlatformReleases(ctx context.Context) (*PlatformReleases, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.platform.Clone(), nil
}

// PluginHistories implements Catalog.
func (m *Memory) PluginHistories(ctx context.Context) ([]*PluginHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*PluginHistory, len(m.plugins))
	for i, h := range m.plugins {
		out[i] = h.Clone()
	}
	return out, nil
}

// AllArtifacts implements Catalog.
func (m *Memory) AllArtifacts(ctx context.Context) ([]Coordinates, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Coordinates
	for _, r := range m.platform.releases {
		out = append(out, r.Coordinates)
	}
	for _, h := range m.plugins {
		for _, a := range h.releases {
			out = append(out, a.Coordinates)
		}
	}
	return out, nil
}

// Digests implements Catalog.
func (m *Memory) Digests(ctx context.Context, c Coordinates) (Digests, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.digests[c]
	if !ok {
		return Digests{}, errors.New(errors.ErrCodeNotFound, "no digests for %s", c)
	}
	return d, nil
}

// Manifest implements Catalog. When no manifest was recorded, the
// META-INF/MANIFEST.MF zip entry is parsed if present.
func (m *Memory) Manifest(ctx context.Context, c Coordinates) (manifest.Manifest, error) {
	m.mu.RLock()
	mf, ok := m.manifests[c]
	raw, hasEntry := m.entries[c][manifest.Path]
	m.mu.RUnlock()
	switch {
	case ok:
		return mf, nil
	case hasEntry:
		return manifest.Parse(bytes.NewReader(raw))
	}
	return manifest.Manifest{}, errors.New(errors.ErrCodeNotFound, "no manifest for %s", c)
}

// ZipEntry implements Catalog.
func (m *Memory) ZipEntry(ctx context.Context, c Coordinates, path string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[c][path]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no entry %s in %s", path, c)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Resolve implements Catalog.
func (m *Memory) Resolve(ctx context.Context, c Coordinates) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.files[c]
	if !ok {
		return "", errors.New(errors.ErrCodeFileNotFound, "no local file for %s", c)
	}
	return p, nil
}

// Ensure Memory implements Catalog.
var _ Catalog = (*Memory)(nil)
