package filter

import (
	"context"

	"github.com/matzehuels/updatecenter/pkg/catalog"
)

// AlphaBeta keeps only experimental (alpha or beta) releases, or with
// negate set, only non-experimental ones. The two settings partition
// the releases of the inner catalog.
type AlphaBeta struct {
	catalog.Catalog
	negate bool
}

// NewAlphaBeta wraps inner.
func NewAlphaBeta(inner catalog.Catalog, negate bool) *AlphaBeta {
	return &AlphaBeta{Catalog: inner, negate: negate}
}

// PluginHistories implements catalog.Catalog.
func (f *AlphaBeta) PluginHistories(ctx context.Context) ([]*catalog.PluginHistory, error) {
	in, err := f.Catalog.PluginHistories(ctx)
	if err != nil {
		return nil, err
	}
	out := catalog.RetainHistories(in, func(a *catalog.Artifact) bool {
		return a.IsAlphaOrBeta() != f.negate
	})
	reportPlugins(ctx, "alpha-beta", in, out)
	return out, nil
}
