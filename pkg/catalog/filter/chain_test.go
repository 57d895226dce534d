package filter

import (
	"testing"

	"github.com/matzehuels/updatecenter/pkg/observability"
	"github.com/matzehuels/updatecenter/pkg/version"
)

func chainCatalog() *catalogFixture {
	return &catalogFixture{
		cores: []string{"2.300", "2.361", "2.361.4", "2.375.1"},
		releases: []release{
			{id: "beta-only", version: "1.0-beta-1", core: "2.300"},
			{id: "git", version: "4.0", core: "2.300", java: "1.8"},
			{id: "git", version: "5.0", core: "2.361", java: "11"},
			{id: "git", version: "6.0-beta", core: "2.361", java: "11"},
			{id: "git", version: "7.0", core: "2.400", java: "11"},
			{id: "matrix", version: "1.0", core: "2.300"},
		},
	}
}

type catalogFixture struct {
	cores    []string
	releases []release
}

func TestBuildDefault(t *testing.T) {
	fx := chainCatalog()
	c := Build(newCatalog(fx.cores, fx.releases...), Options{Logger: quietLogger()})
	assertEqual(t, "plugins", histories(t, c), map[string][]string{
		"git":    {"7.0", "5.0", "4.0"},
		"matrix": {"1.0"},
	})
	assertEqual(t, "platform", platformVersions(t, c), fx.cores)
}

func TestBuildTruncatesBeforeExperimental(t *testing.T) {
	fx := chainCatalog()
	c := Build(newCatalog(fx.cores, fx.releases...), Options{MaxPlugins: 2, Logger: quietLogger()})
	assertEqual(t, "plugins", pluginIDs(t, c), []string{"git"})
}

func TestBuildOnlyExperimental(t *testing.T) {
	fx := chainCatalog()
	c := Build(newCatalog(fx.cores, fx.releases...), Options{OnlyExperimental: true, Logger: quietLogger()})
	assertEqual(t, "plugins", histories(t, c), map[string][]string{
		"beta-only": {"1.0-beta-1"},
		"git":       {"6.0-beta"},
	})
}

func TestBuildFullChain(t *testing.T) {
	fx := chainCatalog()
	hooks := &recordingHooks{}
	observability.SetFilterHooks(hooks)
	defer observability.Reset()

	c := Build(newCatalog(fx.cores, fx.releases...), Options{
		AllowList:        &AllowList{Core: "*", Plugins: map[string]string{"git": "*", "beta-only": "*"}},
		WithExperimental: true,
		StableCore:       true,
		CapCore:          version.MustParse("2.361"),
		CapPlugin:        version.MustParse("2.361.4"),
		JavaVersion:      version.Java8,
		Logger:           quietLogger(),
	})

	assertEqual(t, "plugins", histories(t, c), map[string][]string{
		"beta-only": {"1.0-beta-1"},
	})
	assertEqual(t, "platform", platformVersions(t, c), []string{"2.361.4", "2.375.1"})
	assertEqual(t, "plugin stages", hooks.events[:3], []string{
		"allow-list/plugins", "version-cap/plugins", "predicate/plugins",
	})
}
