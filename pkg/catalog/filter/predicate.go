package filter

import (
	"context"

	"github.com/matzehuels/updatecenter/pkg/catalog"
)

// PluginFilter decides per release whether it is left out of the
// catalog.
type PluginFilter interface {
	ShouldIgnore(ctx context.Context, a *catalog.Artifact) bool
}

// PluginFilterFunc adapts a function to PluginFilter.
type PluginFilterFunc func(ctx context.Context, a *catalog.Artifact) bool

// ShouldIgnore implements PluginFilter.
func (f PluginFilterFunc) ShouldIgnore(ctx context.Context, a *catalog.Artifact) bool {
	return f(ctx, a)
}

// Filtering removes every release that any of its filters ignores.
type Filtering struct {
	catalog.Catalog
	filters []PluginFilter
}

// NewFiltering wraps inner with the given per-release filters.
func NewFiltering(inner catalog.Catalog, filters ...PluginFilter) *Filtering {
	return &Filtering{Catalog: inner, filters: filters}
}

// PluginHistories implements catalog.Catalog.
func (f *Filtering) PluginHistories(ctx context.Context) ([]*catalog.PluginHistory, error) {
	in, err := f.Catalog.PluginHistories(ctx)
	if err != nil {
		return nil, err
	}
	out := catalog.RetainHistories(in, func(a *catalog.Artifact) bool {
		for _, pf := range f.filters {
			if pf.ShouldIgnore(ctx, a) {
				return false
			}
		}
		return true
	})
	reportPlugins(ctx, "predicate", in, out)
	return out, nil
}
