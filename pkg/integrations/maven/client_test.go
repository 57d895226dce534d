package maven

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/updatecenter/pkg/cache"
	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/integrations"
)

const gitMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>org.jenkins-ci.plugins</groupId>
  <artifactId>git</artifactId>
  <versioning>
    <latest>5.2.0</latest>
    <release>5.2.0</release>
    <versions>
      <version>4.0</version>
      <version>5.0-beta-1</version>
      <version>5.2.0</version>
      <version>5.2.0</version>
    </versions>
    <lastUpdated>20240115103000</lastUpdated>
  </versioning>
</metadata>`

var gitCoords = catalog.Coordinates{
	GroupID:    "org.jenkins-ci.plugins",
	ArtifactID: "git",
	Version:    "5.2.0",
	Packaging:  catalog.PackagingHPI,
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		coord        string
		wantGroup    string
		wantArtifact string
		wantErr      bool
	}{
		{"org.jenkins-ci.plugins:git", "org.jenkins-ci.plugins", "git", false},
		{"org.jenkins-ci.main:jenkins-war:2.440", "org.jenkins-ci.main", "jenkins-war", false},
		{"invalid", "", "", true},
		{":git", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.coord, func(t *testing.T) {
			g, a, err := ParseCoordinate(tt.coord)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCoordinate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if g != tt.wantGroup {
				t.Errorf("groupID = %v, want %v", g, tt.wantGroup)
			}
			if a != tt.wantArtifact {
				t.Errorf("artifactID = %v, want %v", a, tt.wantArtifact)
			}
		})
	}
}

func TestParseMetadata(t *testing.T) {
	md, err := parseMetadata([]byte(gitMetadata))
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if md.ArtifactID != "git" || md.GroupID != "org.jenkins-ci.plugins" {
		t.Errorf("coordinates = %s:%s", md.GroupID, md.ArtifactID)
	}
	want := []string{"4.0", "5.0-beta-1", "5.2.0"}
	if len(md.Versions) != len(want) {
		t.Fatalf("versions = %v, want %v", md.Versions, want)
	}
	for i := range want {
		if md.Versions[i] != want[i] {
			t.Errorf("versions[%d] = %s, want %s", i, md.Versions[i], want[i])
		}
	}
	if md.Release != "5.2.0" {
		t.Errorf("release = %q", md.Release)
	}
	if got := md.LastUpdated.Format(time.RFC3339); got != "2024-01-15T10:30:00Z" {
		t.Errorf("lastUpdated = %s", got)
	}
}

func TestClient_FetchMetadata(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/org/jenkins-ci/plugins/git/maven-metadata.xml" {
			http.NotFound(w, r)
			return
		}
		requests++
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(gitMetadata))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	for range 2 {
		md, err := c.FetchMetadata(context.Background(), "org.jenkins-ci.plugins", "git", false)
		if err != nil {
			t.Fatalf("FetchMetadata failed: %v", err)
		}
		if len(md.Versions) != 3 {
			t.Errorf("expected 3 versions, got %v", md.Versions)
		}
	}
	if requests != 1 {
		t.Errorf("expected cached second lookup, got %d requests", requests)
	}
}

func TestClient_FetchMetadata_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.FetchMetadata(context.Background(), "org.missing", "artifact", true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Checksums(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/" + gitCoords.Path() + ".sha1":
			w.Write([]byte("DA39A3EE5E6B4B0D3255BFEF95601890AFD80709  git-5.2.0.hpi\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	d, err := c.Checksums(context.Background(), gitCoords)
	if err != nil {
		t.Fatalf("Checksums failed: %v", err)
	}
	if d.SHA1 != "da39a3ee5e6b4b0d3255bfef95601890afd80709" {
		t.Errorf("SHA1 = %q", d.SHA1)
	}
	if d.SHA256 != "" {
		t.Errorf("SHA256 should be empty when the sidecar is missing, got %q", d.SHA256)
	}
}

func TestClient_FetchManifest(t *testing.T) {
	hpi := buildHPI(t, map[string]string{
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\r\nShort-Name: git\r\nJenkins-Version: 2.401.3\r\n\r\n",
		"WEB-INF/licenses.xml": "<licenses/>",
	})
	downloads := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+gitCoords.Path() {
			http.NotFound(w, r)
			return
		}
		downloads++
		w.Write(hpi)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	ctx := context.Background()

	for range 2 {
		mf, err := c.FetchManifest(ctx, gitCoords, false)
		if err != nil {
			t.Fatalf("FetchManifest failed: %v", err)
		}
		if got := mf.RequiredCore(); got != "2.401.3" {
			t.Errorf("RequiredCore = %q, want 2.401.3", got)
		}
	}
	if downloads != 1 {
		t.Errorf("expected manifest to be cached, got %d downloads", downloads)
	}

	entry, err := c.FetchZipEntry(ctx, gitCoords, "WEB-INF/licenses.xml")
	if err != nil {
		t.Fatalf("FetchZipEntry failed: %v", err)
	}
	if string(entry) != "<licenses/>" {
		t.Errorf("entry = %q", entry)
	}

	var buf bytes.Buffer
	n, err := c.DownloadArtifact(ctx, gitCoords, &buf)
	if err != nil {
		t.Fatalf("DownloadArtifact failed: %v", err)
	}
	if n != int64(len(hpi)) {
		t.Errorf("downloaded %d bytes, want %d", n, len(hpi))
	}
}

func TestClient_URL(t *testing.T) {
	c := NewClient(nil, "https://repo.example.org/releases/", time.Hour)
	want := "https://repo.example.org/releases/org/jenkins-ci/plugins/git/5.2.0/git-5.2.0.hpi"
	if got := c.URL(gitCoords); got != want {
		t.Errorf("URL = %s, want %s", got, want)
	}
	if NewClient(nil, "", time.Hour).BaseURL() != DefaultRepository {
		t.Error("empty base URL should select the default repository")
	}
}

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(fc, serverURL, time.Hour)
	c.WithBackoff(cache.Backoff{Attempts: 1})
	return c
}

func buildHPI(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
