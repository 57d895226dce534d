package filter

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/observability"
)

func reportPlugins(ctx context.Context, name string, in, out []*catalog.PluginHistory) {
	observability.Filter().OnFilter(ctx, name, observability.ScopePlugins, catalog.Count(in), catalog.Count(out))
}

func reportPlatform(ctx context.Context, name string, in, out *catalog.PlatformReleases) {
	observability.Filter().OnFilter(ctx, name, observability.ScopePlatform, in.Len(), out.Len())
}

func loggerOrDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
