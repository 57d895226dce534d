package filter

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/manifest"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// release describes one plugin release of a test catalog. An empty core
// leaves the manifest unresolvable.
type release struct {
	id, version, core, java string
}

func newCatalog(cores []string, releases ...release) *catalog.Memory {
	m := catalog.NewMemory()
	for _, v := range cores {
		m.AddPlatformRelease(&catalog.PlatformRelease{
			Version:     version.MustParse(v),
			Coordinates: catalog.Coordinates{GroupID: "org.jenkins-ci.main", ArtifactID: "jenkins-war", Version: v, Packaging: catalog.PackagingWAR},
		})
	}
	for _, r := range releases {
		c := catalog.Coordinates{GroupID: "org.jenkins-ci.plugins", ArtifactID: r.id, Version: r.version, Packaging: catalog.PackagingHPI}
		var mf manifest.Manifest
		if r.core != "" {
			attrs := map[string]string{manifest.AttrJenkinsVersion: r.core}
			if r.java != "" {
				attrs[manifest.AttrMinimumJavaVersion] = r.java
			}
			mf = manifest.New(attrs)
		}
		m.AddPlugin(c, mf)
	}
	return m
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func histories(t *testing.T, c catalog.Catalog) map[string][]string {
	t.Helper()
	hs, err := c.PluginHistories(context.Background())
	if err != nil {
		t.Fatalf("PluginHistories() error: %v", err)
	}
	out := make(map[string][]string, len(hs))
	for _, h := range hs {
		out[h.ID] = h.Versions()
	}
	return out
}

func pluginIDs(t *testing.T, c catalog.Catalog) []string {
	t.Helper()
	hs, err := c.PluginHistories(context.Background())
	if err != nil {
		t.Fatalf("PluginHistories() error: %v", err)
	}
	ids := []string{}
	for _, h := range hs {
		ids = append(ids, h.ID)
	}
	return ids
}

func platformVersions(t *testing.T, c catalog.Catalog) []string {
	t.Helper()
	p, err := c.PlatformReleases(context.Background())
	if err != nil {
		t.Fatalf("PlatformReleases() error: %v", err)
	}
	out := []string{}
	for _, v := range p.Versions() {
		out = append(out, v.String())
	}
	return out
}

func assertEqual(t *testing.T, name string, got, want any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
