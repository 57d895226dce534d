package catalog

import "sort"

// PluginHistory holds every known release of one plugin, newest first.
// Release versions are unique within a history.
type PluginHistory struct {
	ID string

	releases []*Artifact
}

// NewPluginHistory creates a history for id from the given releases.
// Releases are sorted newest first; if two share a version the later
// argument wins.
func NewPluginHistory(id string, releases ...*Artifact) *PluginHistory {
	h := &PluginHistory{ID: id}
	for _, a := range releases {
		h.Add(a)
	}
	return h
}

// Add inserts a release, replacing any release with the same version.
func (h *PluginHistory) Add(a *Artifact) {
	for i, r := range h.releases {
		if r.Version == a.Version {
			h.releases[i] = a
			return
		}
	}
	h.releases = append(h.releases, a)
	sort.SliceStable(h.releases, func(i, j int) bool {
		return CompareReleaseVersions(h.releases[i].Version, h.releases[j].Version) > 0
	})
}

// Len returns the number of releases.
func (h *PluginHistory) Len() int { return len(h.releases) }

// Releases returns the releases newest first. The slice is a copy.
func (h *PluginHistory) Releases() []*Artifact {
	out := make([]*Artifact, len(h.releases))
	copy(out, h.releases)
	return out
}

// Latest returns the newest release, or nil for an empty history.
func (h *PluginHistory) Latest() *Artifact {
	if len(h.releases) == 0 {
		return nil
	}
	return h.releases[0]
}

// Get returns the release with the given version.
func (h *PluginHistory) Get(version string) (*Artifact, bool) {
	for _, r := range h.releases {
		if r.Version == version {
			return r, true
		}
	}
	return nil, false
}

// Versions returns the release versions newest first.
func (h *PluginHistory) Versions() []string {
	out := make([]string, len(h.releases))
	for i, r := range h.releases {
		out[i] = r.Version
	}
	return out
}

// Retain returns a new history holding the releases for which keep
// returns true, in the same order. h is not modified.
func (h *PluginHistory) Retain(keep func(*Artifact) bool) *PluginHistory {
	out := &PluginHistory{ID: h.ID}
	for _, r := range h.releases {
		if keep(r) {
			out.releases = append(out.releases, r)
		}
	}
	return out
}

// Clone returns a copy of h that shares artifacts but not storage.
func (h *PluginHistory) Clone() *PluginHistory {
	return &PluginHistory{ID: h.ID, releases: h.Releases()}
}

// RetainHistories applies keep to every history and drops the ones left
// empty.
func RetainHistories(histories []*PluginHistory, keep func(*Artifact) bool) []*PluginHistory {
	out := make([]*PluginHistory, 0, len(histories))
	for _, h := range histories {
		if r := h.Retain(keep); r.Len() > 0 {
			out = append(out, r)
		}
	}
	return out
}
