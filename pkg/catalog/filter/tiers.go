package filter

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/observability"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// DefaultTierAge is how old a platform release may be before it ends its
// line of tiers.
const DefaultTierAge = 400 * 24 * time.Hour

// TierList names the platform versions worth publishing a dedicated,
// version-capped update site for.
type TierList struct {
	StableCores []version.Number `json:"stableCores"`
	WeeklyCores []version.Number `json:"weeklyCores"`
}

// TierOptions configures [Tiers].
type TierOptions struct {
	// Now is the reference time for MaxAge. The zero value means
	// time.Now().
	Now time.Time

	// MaxAge is the age past which a required platform release becomes
	// the last tier of its line. Zero means DefaultTierAge.
	MaxAge time.Duration

	// Logger receives messages about releases that cannot be placed.
	// Nil means log.Default().
	Logger *log.Logger
}

// Tiers computes the tier list of cat.
//
// Every platform version some plugin release requires is a candidate.
// Candidates are visited newest first; a stable (three component)
// candidate becomes a stable tier and implies the weekly release after
// its baseline, a weekly candidate becomes a weekly tier and implies the
// first stable release newer than it. Each line stops after its first
// candidate released more than MaxAge before Now. Candidates missing
// from the platform releases are skipped.
func Tiers(ctx context.Context, cat catalog.Catalog, opts TierOptions) (*TierList, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultTierAge
	}
	logger := loggerOrDefault(opts.Logger)

	platform, err := cat.PlatformReleases(ctx)
	if err != nil {
		return nil, err
	}
	histories, err := cat.PluginHistories(ctx)
	if err != nil {
		return nil, err
	}

	required, users := requiredCores(ctx, histories, logger)
	cutoff := opts.Now.Add(-opts.MaxAge)

	stable := map[string]version.Number{}
	weekly := map[string]version.Number{}
	var stableDone, weeklyDone bool

	for _, dep := range required {
		r, ok := platform.Get(dep)
		if !ok {
			logger.Info("required core is not a known platform release",
				"core", dep, "plugins", users[dep.String()])
			continue
		}
		recent := r.Timestamp.After(cutoff)
		if isStableLine(dep) {
			if stableDone {
				continue
			}
			stableDone = !recent
			stable[dep.String()] = dep
			if !weeklyDone {
				if next, ok := weeklyAfterBaseline(dep); ok {
					weekly[next.String()] = next
				}
			}
		} else {
			if !weeklyDone {
				weeklyDone = !recent
				weekly[dep.String()] = dep
			}
			if !stableDone {
				if next, ok := stableAfter(platform, dep); ok {
					stable[next.String()] = next
				}
			}
		}
		if stableDone && weeklyDone {
			break
		}
	}

	return &TierList{StableCores: ascending(stable), WeeklyCores: ascending(weekly)}, nil
}

// requiredCores returns the distinct required platform versions of all
// releases newest first, and the plugin releases requiring each.
func requiredCores(ctx context.Context, histories []*catalog.PluginHistory, logger *log.Logger) ([]version.Number, map[string][]string) {
	seen := map[string]version.Number{}
	users := map[string][]string{}
	for _, h := range histories {
		for _, a := range h.Releases() {
			v, err := a.RequiredCore(ctx)
			if err != nil {
				logger.Warn("cannot determine required core",
					"plugin", a.ID(), "version", a.Version, "err", err)
				observability.Filter().OnResolutionError(ctx, "tiers", a.ID())
				continue
			}
			seen[v.String()] = v
			users[v.String()] = append(users[v.String()], a.ID()+":"+a.Version)
		}
	}
	out := make([]version.Number, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IsNewerThan(out[j]) })
	return out, users
}

func isStableLine(v version.Number) bool {
	return v.DigitAt(2) != version.Absent
}

// weeklyAfterBaseline maps an LTS release "2.426.1" to the weekly release
// following its baseline, "2.427".
func weeklyAfterBaseline(v version.Number) (version.Number, bool) {
	if v.Len() != 3 || v.DigitAt(2) < 1 {
		return version.Number{}, false
	}
	n, err := version.Parse(strconv.Itoa(v.DigitAt(0)) + "." + strconv.Itoa(v.DigitAt(1)+1))
	if err != nil {
		return version.Number{}, false
	}
	return n, true
}

// stableAfter returns the oldest stable platform release newer than v.
func stableAfter(p *catalog.PlatformReleases, v version.Number) (version.Number, bool) {
	for _, r := range p.Releases() {
		if isStableLine(r.Version) && r.Version.IsNewerThan(v) {
			return r.Version, true
		}
	}
	return version.Number{}, false
}

func ascending(set map[string]version.Number) []version.Number {
	out := make([]version.Number, 0, len(set))
	for _, v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IsOlderThan(out[j]) })
	return out
}
