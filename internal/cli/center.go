package cli

import (
	"context"
	"time"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/manifest"
)

// updateCenter is the JSON document served to clients: the newest core
// and the newest release of every plugin that survived filtering.
type updateCenter struct {
	ID          string                 `json:"id"`
	RunID       string                 `json:"runId,omitempty"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Core        *coreEntry             `json:"core,omitempty"`
	Plugins     map[string]pluginEntry `json:"plugins"`
}

type coreEntry struct {
	Version   string    `json:"version"`
	GAV       string    `json:"gav"`
	SHA1      string    `json:"sha1,omitempty"`
	SHA256    string    `json:"sha256,omitempty"`
	Timestamp time.Time `json:"buildDate,omitzero"`
}

type pluginEntry struct {
	Name               string                `json:"name"`
	Title              string                `json:"title,omitempty"`
	Version            string                `json:"version"`
	GAV                string                `json:"gav"`
	RequiredCore       string                `json:"requiredCore,omitempty"`
	MinimumJavaVersion string                `json:"minimumJavaVersion,omitempty"`
	URL                string                `json:"wiki,omitempty"`
	SHA1               string                `json:"sha1,omitempty"`
	SHA256             string                `json:"sha256,omitempty"`
	Dependencies       []manifest.Dependency `json:"dependencies"`
	Timestamp          time.Time             `json:"releaseTimestamp,omitzero"`
}

// buildUpdateCenter reads the filtered views of cat into a document.
// Attributes that cannot be resolved are left empty.
func buildUpdateCenter(ctx context.Context, cat catalog.Catalog, runID string) (*updateCenter, error) {
	platform, err := cat.PlatformReleases(ctx)
	if err != nil {
		return nil, err
	}
	histories, err := cat.PluginHistories(ctx)
	if err != nil {
		return nil, err
	}

	uc := &updateCenter{
		ID:          "default",
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Plugins:     make(map[string]pluginEntry, len(histories)),
	}
	if latest := platform.Latest(); latest != nil {
		uc.Core = newCoreEntry(ctx, cat, latest)
	}
	for _, h := range histories {
		if a := h.Latest(); a != nil {
			uc.Plugins[h.ID] = newPluginEntry(ctx, cat, a)
		}
	}
	return uc, nil
}

func newCoreEntry(ctx context.Context, cat catalog.Catalog, r *catalog.PlatformRelease) *coreEntry {
	e := &coreEntry{Version: r.Version.String(), GAV: gav(r.Coordinates), Timestamp: r.Timestamp}
	if d, err := cat.Digests(ctx, r.Coordinates); err == nil {
		e.SHA1, e.SHA256 = d.SHA1, d.SHA256
	}
	return e
}

func newPluginEntry(ctx context.Context, cat catalog.Catalog, a *catalog.Artifact) pluginEntry {
	e := pluginEntry{
		Name:         a.ID(),
		Version:      a.Version,
		GAV:          gav(a.Coordinates),
		Timestamp:    a.Timestamp,
		Dependencies: []manifest.Dependency{},
	}
	if d, err := cat.Digests(ctx, a.Coordinates); err == nil {
		e.SHA1, e.SHA256 = d.SHA1, d.SHA256
	}
	mf, err := a.Manifest(ctx)
	if err != nil {
		loggerFromContext(ctx).Debug("manifest unavailable", "plugin", a.ID(), "version", a.Version, "error", err)
		return e
	}
	e.Title = mf.Value(manifest.AttrLongName)
	e.URL = mf.Value(manifest.AttrURL)
	e.RequiredCore = mf.RequiredCore()
	if java, ok, err := mf.MinimumJava(); err == nil && ok {
		e.MinimumJavaVersion = java.String()
	}
	if deps, err := mf.Dependencies(); err == nil && deps != nil {
		e.Dependencies = deps
	}
	return e
}

func gav(c catalog.Coordinates) string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}
