package catalog

import (
	"reflect"
	"testing"
)

func plugin(id, v string) *Artifact {
	return NewArtifact(Coordinates{GroupID: "org.jenkins-ci.plugins", ArtifactID: id, Version: v, Packaging: PackagingHPI}, nil)
}

func TestPluginHistoryOrder(t *testing.T) {
	h := NewPluginHistory("git", plugin("git", "1.0"), plugin("git", "3.0"), plugin("git", "2.0-beta-1"), plugin("git", "2.0"))
	want := []string{"3.0", "2.0", "2.0-beta-1", "1.0"}
	if got := h.Versions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Versions() = %v, want %v", got, want)
	}
	if h.Latest().Version != "3.0" {
		t.Errorf("Latest() = %s, want 3.0", h.Latest().Version)
	}
}

func TestPluginHistoryOrderNumberedQualifiers(t *testing.T) {
	h := NewPluginHistory("git", plugin("git", "1.0-beta-2"), plugin("git", "1.0-beta-10"), plugin("git", "1.0-beta-9"))
	want := []string{"1.0-beta-10", "1.0-beta-9", "1.0-beta-2"}
	if got := h.Versions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Versions() = %v, want %v", got, want)
	}
}

func TestPluginHistoryUniqueVersions(t *testing.T) {
	first := plugin("git", "1.0")
	second := plugin("git", "1.0")
	h := NewPluginHistory("git", first, second)
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	if got, _ := h.Get("1.0"); got != second {
		t.Error("later release with the same version should win")
	}
}

func TestPluginHistoryRetain(t *testing.T) {
	h := NewPluginHistory("git", plugin("git", "1.0"), plugin("git", "2.0"), plugin("git", "3.0"))
	r := h.Retain(func(a *Artifact) bool { return a.Version != "2.0" })

	if got, want := r.Versions(), []string{"3.0", "1.0"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Retain() versions = %v, want %v", got, want)
	}
	if h.Len() != 3 {
		t.Errorf("Retain() modified the receiver: Len() = %d, want 3", h.Len())
	}
}

func TestPluginHistoryReleasesIsCopy(t *testing.T) {
	h := NewPluginHistory("git", plugin("git", "1.0"))
	rs := h.Releases()
	rs[0] = nil
	if h.Latest() == nil {
		t.Error("Releases() should return a copy")
	}
}

func TestRetainHistoriesDropsEmpty(t *testing.T) {
	hs := []*PluginHistory{
		NewPluginHistory("a", plugin("a", "1.0")),
		NewPluginHistory("b", plugin("b", "1.0-beta")),
	}
	out := RetainHistories(hs, func(a *Artifact) bool { return !a.IsAlphaOrBeta() })
	if len(out) != 1 || out[0].ID != "a" {
		t.Errorf("RetainHistories() = %v, want only a", out)
	}
	if Count(hs) != 2 {
		t.Errorf("Count(input) = %d, want 2", Count(hs))
	}
}
