package filter

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// Options selects the filters [Build] applies. The zero value applies
// none except excluding experimental releases.
type Options struct {
	// AllowList restricts the catalog to the listed artifacts.
	AllowList *AllowList

	// MaxPlugins keeps only the first MaxPlugins plugins. Zero disables
	// truncation.
	MaxPlugins int

	// OnlyExperimental keeps alpha and beta releases only.
	OnlyExperimental bool

	// WithExperimental keeps alpha and beta releases alongside the rest.
	WithExperimental bool

	// StableCore keeps LTS platform releases only.
	StableCore bool

	// CapCore and CapPlugin configure VersionCap; it is applied when
	// either is set.
	CapCore   version.Number
	CapPlugin version.Number

	// Depth is the number of releases VersionCap keeps per plugin.
	Depth int

	// JavaVersion drops releases needing a newer Java.
	JavaVersion version.JavaSpec

	// InterpolateJava guesses the minimum Java version from the required
	// core for releases that do not declare one.
	InterpolateJava bool

	Logger *log.Logger
}

// Build wraps base in the filters selected by opts, innermost first:
// allow list, truncation, experimental selection, stable core, version
// cap, then Java version.
func Build(base catalog.Catalog, opts Options) catalog.Catalog {
	c := base
	if opts.AllowList != nil {
		c = NewAllowed(c, opts.AllowList, opts.Logger)
	}
	if opts.MaxPlugins > 0 {
		c = NewTruncate(c, opts.MaxPlugins)
	}
	if opts.OnlyExperimental {
		c = NewAlphaBeta(c, false)
	}
	if !opts.WithExperimental && !opts.OnlyExperimental {
		c = NewAlphaBeta(c, true)
	}
	if opts.StableCore {
		c = NewStable(c)
	}
	if !opts.CapCore.IsZero() || !opts.CapPlugin.IsZero() {
		c = NewVersionCap(c, VersionCapOptions{
			CapCore:   opts.CapCore,
			CapPlugin: opts.CapPlugin,
			Depth:     opts.Depth,
			Logger:    opts.Logger,
		})
	}
	if !opts.JavaVersion.IsZero() {
		c = NewFiltering(c, &JavaVersion{
			Target:      opts.JavaVersion,
			Interpolate: opts.InterpolateJava,
			Logger:      opts.Logger,
		})
	}
	return c
}
