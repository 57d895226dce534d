package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/manifest"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// ManifestSource lazily loads the manifest of one artifact.
type ManifestSource func(ctx context.Context) (manifest.Manifest, error)

// Artifact is one plugin release.
//
// Required platform version and minimum Java version are read from the
// artifact manifest on first use. A successful load is memoized; a
// failed one is retried on the next call.
type Artifact struct {
	Coordinates
	Timestamp time.Time

	source ManifestSource

	mu       sync.Mutex
	loaded   bool
	manifest manifest.Manifest
}

// NewArtifact creates an artifact whose manifest is read from src.
// A nil src makes every attribute lookup fail with a resolution error.
func NewArtifact(c Coordinates, src ManifestSource) *Artifact {
	return &Artifact{Coordinates: c, source: src}
}

// ID returns the plugin id (the Maven artifactId).
func (a *Artifact) ID() string { return a.ArtifactID }

// IsAlphaOrBeta reports whether the version marks an experimental
// release.
func (a *Artifact) IsAlphaOrBeta() bool {
	s := strings.ToLower(a.Version)
	return strings.Contains(s, "alpha") || strings.Contains(s, "beta")
}

// Manifest returns the artifact manifest. Failures carry
// [errors.ErrCodeResolution].
func (a *Artifact) Manifest(ctx context.Context) (manifest.Manifest, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded {
		return a.manifest, nil
	}
	if a.source == nil {
		return manifest.Manifest{}, errors.New(errors.ErrCodeResolution, "no manifest source for %s", a.Coordinates)
	}
	m, err := a.source(ctx)
	if err != nil {
		return manifest.Manifest{}, errors.Wrap(errors.ErrCodeResolution, err, "read manifest of %s", a.Coordinates)
	}
	a.manifest, a.loaded = m, true
	return m, nil
}

// RequiredCore returns the minimum platform version the release needs.
// A manifest that cannot be read yields [errors.ErrCodeResolution]; a
// malformed version yields [errors.ErrCodeInvalidFormat].
func (a *Artifact) RequiredCore(ctx context.Context) (version.Number, error) {
	m, err := a.Manifest(ctx)
	if err != nil {
		return version.Number{}, err
	}
	return version.Parse(m.RequiredCore())
}

// MinimumJava returns the minimum Java version the release declares.
// ok is false when the manifest does not declare one.
func (a *Artifact) MinimumJava(ctx context.Context) (spec version.JavaSpec, ok bool, err error) {
	m, err := a.Manifest(ctx)
	if err != nil {
		return version.JavaSpec{}, false, err
	}
	return m.MinimumJava()
}
