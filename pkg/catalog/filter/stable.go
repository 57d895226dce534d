package filter

import (
	"context"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// Stable keeps platform releases with a third version component
// ("1.625.3"), which marks a long-term support line. Plugins are
// untouched.
type Stable struct {
	catalog.Catalog
}

// NewStable wraps inner.
func NewStable(inner catalog.Catalog) *Stable {
	return &Stable{Catalog: inner}
}

// PlatformReleases implements catalog.Catalog.
func (f *Stable) PlatformReleases(ctx context.Context) (*catalog.PlatformReleases, error) {
	in, err := f.Catalog.PlatformReleases(ctx)
	if err != nil {
		return nil, err
	}
	out := in.Retain(func(r *catalog.PlatformRelease) bool {
		return r.Version.DigitAt(2) != version.Absent
	})
	reportPlatform(ctx, "stable", in, out)
	return out, nil
}
