package filter

import (
	"context"

	"github.com/matzehuels/updatecenter/pkg/catalog"
)

// Truncate keeps the first n plugins in catalog order. It is used to
// produce small sample catalogs. Platform releases are untouched.
type Truncate struct {
	catalog.Catalog
	n int
}

// NewTruncate wraps inner. A negative n keeps nothing.
func NewTruncate(inner catalog.Catalog, n int) *Truncate {
	return &Truncate{Catalog: inner, n: max(n, 0)}
}

// PluginHistories implements catalog.Catalog.
func (f *Truncate) PluginHistories(ctx context.Context) ([]*catalog.PluginHistory, error) {
	in, err := f.Catalog.PluginHistories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*catalog.PluginHistory, min(f.n, len(in)))
	copy(out, in)
	reportPlugins(ctx, "truncate", in, out)
	return out, nil
}
