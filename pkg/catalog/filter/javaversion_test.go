package filter

import (
	"context"
	"testing"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/version"
)

func artifactFor(t *testing.T, c *catalog.Memory, id string) *catalog.Artifact {
	t.Helper()
	hs, _ := c.PluginHistories(context.Background())
	for _, h := range hs {
		if h.ID == id {
			return h.Latest()
		}
	}
	t.Fatalf("no plugin %s", id)
	return nil
}

func TestJavaVersionShouldIgnore(t *testing.T) {
	base := newCatalog(nil,
		release{id: "java8", version: "1.0", core: "2.60", java: "1.8"},
		release{id: "java11", version: "1.0", core: "2.300", java: "11"},
		release{id: "undeclared", version: "1.0", core: "2.60"},
		release{id: "malformed", version: "1.0", core: "2.60", java: "1.6.2"},
		release{id: "unresolvable", version: "1.0"},
	)

	tests := []struct {
		target string
		id     string
		want   bool
	}{
		{"1.8", "java8", false},
		{"8", "java11", true},
		{"11", "java11", false},
		{"17", "java8", false},
		{"1.7", "java8", true},
		{"1.6", "undeclared", false},
		{"1.6", "malformed", false},
		{"1.6", "unresolvable", false},
	}
	for _, tt := range tests {
		t.Run(tt.target+"_"+tt.id, func(t *testing.T) {
			f := &JavaVersion{Target: version.MustParseJava(tt.target), Logger: quietLogger()}
			if got := f.ShouldIgnore(context.Background(), artifactFor(t, base, tt.id)); got != tt.want {
				t.Errorf("ShouldIgnore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJavaVersionInterpolate(t *testing.T) {
	base := newCatalog(nil,
		release{id: "old", version: "1.0", core: "1.600"},
		release{id: "newer", version: "1.0", core: "2.60"},
	)
	f := &JavaVersion{Target: version.Java7, Interpolate: true, Logger: quietLogger()}
	if f.ShouldIgnore(context.Background(), artifactFor(t, base, "old")) {
		t.Error("core 1.600 implies Java 6 and should be kept for Java 7")
	}
	if !f.ShouldIgnore(context.Background(), artifactFor(t, base, "newer")) {
		t.Error("core 2.60 implies Java 8 and should be ignored for Java 7")
	}
}

func TestFilteringWithJavaVersion(t *testing.T) {
	base := newCatalog([]string{"2.60"},
		release{id: "git", version: "1.0", core: "2.60", java: "1.8"},
		release{id: "git", version: "2.0", core: "2.300", java: "11"},
		release{id: "only11", version: "1.0", core: "2.300", java: "11"},
	)
	f := NewFiltering(base, NewJavaVersion(version.Java8))
	assertEqual(t, "plugins", histories(t, f), map[string][]string{"git": {"1.0"}})
	assertEqual(t, "platform", platformVersions(t, f), []string{"2.60"})
}

func TestFilteringFunc(t *testing.T) {
	base := newCatalog(nil, release{id: "a", version: "1.0"}, release{id: "b", version: "1.0"})
	f := NewFiltering(base, PluginFilterFunc(func(ctx context.Context, a *catalog.Artifact) bool {
		return a.ID() == "a"
	}))
	assertEqual(t, "plugins", pluginIDs(t, f), []string{"b"})
}
