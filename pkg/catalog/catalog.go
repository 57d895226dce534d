package catalog

import (
	"context"
	"io"

	"github.com/matzehuels/updatecenter/pkg/manifest"
)

// Catalog is the capability surface every filter and collaborator offers.
//
// PlatformReleases and PluginHistories are the filterable views. The
// remaining operations are pass-through I/O that filters never narrow.
type Catalog interface {
	// PlatformReleases returns platform releases in ascending version order.
	PlatformReleases(ctx context.Context) (*PlatformReleases, error)

	// PluginHistories returns plugin histories in catalog order.
	PluginHistories(ctx context.Context) ([]*PluginHistory, error)

	// AllArtifacts returns the coordinates of every artifact known to the
	// underlying source, ignoring any filtering.
	AllArtifacts(ctx context.Context) ([]Coordinates, error)

	// Digests returns the checksums of an artifact.
	Digests(ctx context.Context, c Coordinates) (Digests, error)

	// Manifest returns the main manifest section of an artifact.
	Manifest(ctx context.Context, c Coordinates) (manifest.Manifest, error)

	// ZipEntry opens a single entry of an artifact archive.
	ZipEntry(ctx context.Context, c Coordinates, path string) (io.ReadCloser, error)

	// Resolve returns the path of a local copy of the artifact.
	Resolve(ctx context.Context, c Coordinates) (string, error)
}

// Digests holds artifact checksums, hex encoded. Either may be empty
// when the source does not publish it.
type Digests struct {
	SHA1   string `json:"sha1,omitempty"`
	SHA256 string `json:"sha256,omitempty"`
}

// Count sums the number of releases over a set of histories.
func Count(histories []*PluginHistory) int {
	n := 0
	for _, h := range histories {
		n += h.Len()
	}
	return n
}
