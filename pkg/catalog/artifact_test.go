package catalog

import (
	"context"
	"errors"
	"testing"

	uerrors "github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/manifest"
	"github.com/matzehuels/updatecenter/pkg/version"
)

func TestIsAlphaOrBeta(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"1.0", false},
		{"1.0-alpha-1", true},
		{"2.0-BETA", true},
		{"3.0-Beta2", true},
		{"1.0-rc1", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := plugin("x", tt.version).IsAlphaOrBeta(); got != tt.want {
				t.Errorf("IsAlphaOrBeta() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArtifactManifestMemoized(t *testing.T) {
	calls := 0
	a := NewArtifact(Coordinates{ArtifactID: "git", Version: "1.0"}, func(ctx context.Context) (manifest.Manifest, error) {
		calls++
		return manifest.New(map[string]string{"Jenkins-Version": "2.60.3", "Minimum-Java-Version": "1.8"}), nil
	})
	ctx := context.Background()

	core, err := a.RequiredCore(ctx)
	if err != nil {
		t.Fatalf("RequiredCore() error: %v", err)
	}
	if !core.Equal(version.MustParse("2.60.3")) {
		t.Errorf("RequiredCore() = %v, want 2.60.3", core)
	}
	java, ok, err := a.MinimumJava(ctx)
	if err != nil || !ok || !java.Equal(version.Java8) {
		t.Errorf("MinimumJava() = %v, %v, %v", java, ok, err)
	}
	if calls != 1 {
		t.Errorf("manifest source called %d times, want 1", calls)
	}
}

func TestArtifactManifestFailureRetried(t *testing.T) {
	calls := 0
	a := NewArtifact(Coordinates{ArtifactID: "git", Version: "1.0"}, func(ctx context.Context) (manifest.Manifest, error) {
		calls++
		return manifest.Manifest{}, errors.New("boom")
	})
	for range 2 {
		_, err := a.RequiredCore(context.Background())
		if !uerrors.Is(err, uerrors.ErrCodeResolution) {
			t.Errorf("RequiredCore() error = %v, want RESOLUTION_FAILED", err)
		}
	}
	if calls != 2 {
		t.Errorf("manifest source called %d times, want 2", calls)
	}
}

func TestArtifactRequiredCoreMalformed(t *testing.T) {
	a := NewArtifact(Coordinates{ArtifactID: "git", Version: "1.0"}, func(ctx context.Context) (manifest.Manifest, error) {
		return manifest.New(map[string]string{"Jenkins-Version": "2.x"}), nil
	})
	if _, err := a.RequiredCore(context.Background()); !uerrors.Is(err, uerrors.ErrCodeInvalidFormat) {
		t.Errorf("RequiredCore() error = %v, want INVALID_FORMAT", err)
	}
}

func TestArtifactNilSource(t *testing.T) {
	if _, err := plugin("x", "1.0").Manifest(context.Background()); !uerrors.Is(err, uerrors.ErrCodeResolution) {
		t.Errorf("Manifest() error = %v, want RESOLUTION_FAILED", err)
	}
}

func TestCoordinatesPath(t *testing.T) {
	c := Coordinates{GroupID: "org.jenkins-ci.plugins", ArtifactID: "git", Version: "5.2.0", Packaging: PackagingHPI}
	if got, want := c.Path(), "org/jenkins-ci/plugins/git/5.2.0/git-5.2.0.hpi"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if got, want := c.String(), "org.jenkins-ci.plugins:git:5.2.0:hpi"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
