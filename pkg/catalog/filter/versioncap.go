package filter

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/observability"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// DefaultDepth is the number of releases kept per plugin: the newest
// compatible one plus one fallback for downgrades.
const DefaultDepth = 2

// VersionCapOptions configures [VersionCap].
type VersionCapOptions struct {
	// CapCore drops platform releases older than this version. The zero
	// value keeps every platform release.
	CapCore version.Number

	// CapPlugin keeps only plugin releases whose required platform
	// version is at most this version. The zero value disables the check.
	CapPlugin version.Number

	// Depth is the maximum number of releases kept per plugin.
	// Zero or negative means DefaultDepth.
	Depth int

	// Logger receives debug messages for releases whose required
	// platform version cannot be resolved. Nil means log.Default().
	Logger *log.Logger
}

// VersionCap narrows a catalog to what an instance running CapCore,
// offering plugins compatible up to CapPlugin, would be shown.
//
// Platform releases are kept from CapCore upward. For each plugin the
// newest Depth releases are kept, considering only releases compatible
// with CapPlugin when it is set. Applying the same VersionCap to its own
// output changes nothing.
type VersionCap struct {
	catalog.Catalog
	opts VersionCapOptions
}

// NewVersionCap wraps inner.
func NewVersionCap(inner catalog.Catalog, opts VersionCapOptions) *VersionCap {
	if opts.Depth <= 0 {
		opts.Depth = DefaultDepth
	}
	opts.Logger = loggerOrDefault(opts.Logger)
	return &VersionCap{Catalog: inner, opts: opts}
}

// PlatformReleases implements catalog.Catalog.
func (f *VersionCap) PlatformReleases(ctx context.Context) (*catalog.PlatformReleases, error) {
	in, err := f.Catalog.PlatformReleases(ctx)
	if err != nil {
		return nil, err
	}
	out := in.Clone()
	if !f.opts.CapCore.IsZero() {
		out = in.From(f.opts.CapCore)
	}
	reportPlatform(ctx, "version-cap", in, out)
	return out, nil
}

// PluginHistories implements catalog.Catalog.
func (f *VersionCap) PluginHistories(ctx context.Context) ([]*catalog.PluginHistory, error) {
	in, err := f.Catalog.PluginHistories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*catalog.PluginHistory, 0, len(in))
	for _, h := range in {
		if capped := f.capHistory(ctx, h); capped.Len() > 0 {
			out = append(out, capped)
		}
	}
	reportPlugins(ctx, "version-cap", in, out)
	return out, nil
}

// capHistory scans h newest first and keeps up to Depth accepted
// releases. A release whose required platform version cannot be
// resolved is skipped without counting toward Depth.
func (f *VersionCap) capHistory(ctx context.Context, h *catalog.PluginHistory) *catalog.PluginHistory {
	accepted := make(map[*catalog.Artifact]bool, f.opts.Depth)
	for _, a := range h.Releases() {
		if len(accepted) >= f.opts.Depth {
			break
		}
		if f.opts.CapPlugin.IsZero() {
			accepted[a] = true
			continue
		}
		required, err := a.RequiredCore(ctx)
		if err != nil {
			f.opts.Logger.Debug("skipping release with unknown required core",
				"plugin", a.ID(), "version", a.Version, "err", err)
			observability.Filter().OnResolutionError(ctx, "version-cap", a.ID())
			continue
		}
		if required.Compare(f.opts.CapPlugin) <= 0 {
			accepted[a] = true
		}
	}
	return h.Retain(func(a *catalog.Artifact) bool { return accepted[a] })
}
