package catalog

import (
	"sort"
	"time"

	"github.com/matzehuels/updatecenter/pkg/version"
)

// PlatformRelease is one release of the platform ("core").
type PlatformRelease struct {
	Version     version.Number
	Coordinates Coordinates
	Timestamp   time.Time
}

// PlatformReleases is a set of platform releases keyed by version and
// iterated in ascending version order.
type PlatformReleases struct {
	releases []*PlatformRelease
}

// NewPlatformReleases builds a set from rs. If two releases share a
// version the later argument wins.
func NewPlatformReleases(rs ...*PlatformRelease) *PlatformReleases {
	p := &PlatformReleases{}
	for _, r := range rs {
		p.Put(r)
	}
	return p
}

// Put inserts r, replacing any release with an equal version.
func (p *PlatformReleases) Put(r *PlatformRelease) {
	i := sort.Search(len(p.releases), func(i int) bool {
		return !p.releases[i].Version.IsOlderThan(r.Version)
	})
	if i < len(p.releases) && p.releases[i].Version.Equal(r.Version) {
		p.releases[i] = r
		return
	}
	p.releases = append(p.releases, nil)
	copy(p.releases[i+1:], p.releases[i:])
	p.releases[i] = r
}

// Len returns the number of releases.
func (p *PlatformReleases) Len() int {
	if p == nil {
		return 0
	}
	return len(p.releases)
}

// Releases returns the releases oldest first. The slice is a copy.
func (p *PlatformReleases) Releases() []*PlatformRelease {
	if p == nil {
		return nil
	}
	out := make([]*PlatformRelease, len(p.releases))
	copy(out, p.releases)
	return out
}

// Versions returns the release versions oldest first.
func (p *PlatformReleases) Versions() []version.Number {
	out := make([]version.Number, 0, p.Len())
	for _, r := range p.Releases() {
		out = append(out, r.Version)
	}
	return out
}

// Get returns the release with a version equal to v.
func (p *PlatformReleases) Get(v version.Number) (*PlatformRelease, bool) {
	for _, r := range p.Releases() {
		if r.Version.Equal(v) {
			return r, true
		}
	}
	return nil, false
}

// Latest returns the newest release, or nil when empty.
func (p *PlatformReleases) Latest() *PlatformRelease {
	if p.Len() == 0 {
		return nil
	}
	return p.releases[len(p.releases)-1]
}

// Retain returns a new set holding the releases for which keep returns
// true.
func (p *PlatformReleases) Retain(keep func(*PlatformRelease) bool) *PlatformReleases {
	out := &PlatformReleases{}
	for _, r := range p.Releases() {
		if keep(r) {
			out.releases = append(out.releases, r)
		}
	}
	return out
}

// From returns a new set holding the releases at or above floor.
func (p *PlatformReleases) From(floor version.Number) *PlatformReleases {
	return p.Retain(func(r *PlatformRelease) bool {
		return !r.Version.IsOlderThan(floor)
	})
}

// Clone returns a copy of p that shares releases but not storage.
func (p *PlatformReleases) Clone() *PlatformReleases {
	return &PlatformReleases{releases: p.Releases()}
}
