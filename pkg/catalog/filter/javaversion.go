package filter

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/observability"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// JavaVersion ignores releases that need a newer Java than Target.
// Releases whose minimum Java version cannot be determined are kept.
type JavaVersion struct {
	Target version.JavaSpec

	// Interpolate guesses the minimum Java version from the required
	// platform version when the manifest does not declare one.
	Interpolate bool

	// Logger receives debug messages for undetermined releases.
	// Nil means log.Default().
	Logger *log.Logger
}

// NewJavaVersion creates a filter for the given target Java version.
func NewJavaVersion(target version.JavaSpec) *JavaVersion {
	return &JavaVersion{Target: target}
}

// ShouldIgnore implements PluginFilter.
func (f *JavaVersion) ShouldIgnore(ctx context.Context, a *catalog.Artifact) bool {
	minimum, ok := f.minimumJava(ctx, a)
	if !ok {
		return false
	}
	return f.Target.IsOlderThan(minimum)
}

func (f *JavaVersion) minimumJava(ctx context.Context, a *catalog.Artifact) (version.JavaSpec, bool) {
	logger := loggerOrDefault(f.Logger)
	minimum, ok, err := a.MinimumJava(ctx)
	if err != nil {
		logger.Debug("accepting release with unknown minimum java version",
			"plugin", a.ID(), "version", a.Version, "err", err)
		observability.Filter().OnResolutionError(ctx, "java-version", a.ID())
		return version.JavaSpec{}, false
	}
	if ok {
		return minimum, true
	}
	if f.Interpolate {
		if core, err := a.RequiredCore(ctx); err == nil {
			return version.InterpolateJava(core), true
		}
	}
	logger.Debug("release declares no minimum java version", "plugin", a.ID(), "version", a.Version)
	return version.JavaSpec{}, false
}

// Ensure JavaVersion implements PluginFilter.
var _ PluginFilter = (*JavaVersion)(nil)
