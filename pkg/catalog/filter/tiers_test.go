package filter

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/version"
)

var tierNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type core struct {
	version string
	at      time.Time
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// tierCatalog holds the given platform releases and one plugin release
// per required core. An empty required core is left unresolvable.
func tierCatalog(cores []core, required ...string) *catalog.Memory {
	rs := make([]release, 0, len(required))
	for i, r := range required {
		rs = append(rs, release{id: "p" + strconv.Itoa(i), version: "1.0", core: r})
	}
	m := newCatalog(nil, rs...)
	for _, c := range cores {
		m.AddPlatformRelease(&catalog.PlatformRelease{
			Version:     version.MustParse(c.version),
			Coordinates: catalog.Coordinates{GroupID: "org.jenkins-ci.main", ArtifactID: "jenkins-war", Version: c.version, Packaging: catalog.PackagingWAR},
			Timestamp:   c.at,
		})
	}
	return m
}

func strs(vs []version.Number) []string {
	out := []string{}
	for _, v := range vs {
		out = append(out, v.String())
	}
	return out
}

func TestTiers(t *testing.T) {
	tests := []struct {
		name       string
		cores      []core
		required   []string
		wantStable []string
		wantWeekly []string
	}{
		{
			name: "weekly line ends at old release",
			cores: []core{
				{"2.400", day(2023, 1, 10)},
				{"2.426.1", day(2023, 11, 15)},
				{"2.440", day(2024, 1, 16)},
				{"2.440.1", day(2024, 2, 28)},
			},
			required:   []string{"2.440", "2.426.1", "2.400"},
			wantStable: []string{"2.426.1", "2.440.1"},
			wantWeekly: []string{"2.400", "2.427", "2.440"},
		},
		{
			name: "stable line ends at old release",
			cores: []core{
				{"2.300.1", day(2021, 7, 1)},
				{"2.361.1", day(2022, 9, 7)},
				{"2.426.1", day(2023, 11, 15)},
			},
			required:   []string{"2.426.1", "2.361.1", "2.300.1"},
			wantStable: []string{"2.361.1", "2.426.1"},
			wantWeekly: []string{"2.362", "2.427"},
		},
		{
			name:       "unknown and unresolvable cores are skipped",
			cores:      []core{{"2.440", day(2024, 1, 16)}},
			required:   []string{"2.999", "", "2.440"},
			wantStable: []string{},
			wantWeekly: []string{"2.440"},
		},
		{
			name:       "duplicate requirements collapse",
			cores:      []core{{"2.440", day(2024, 1, 16)}, {"2.440.1", day(2024, 2, 28)}},
			required:   []string{"2.440", "2.440", "2.440.1"},
			wantStable: []string{"2.440.1"},
			wantWeekly: []string{"2.440", "2.441"},
		},
		{
			name:       "no plugins",
			cores:      []core{{"2.440", day(2024, 1, 16)}},
			wantStable: []string{},
			wantWeekly: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := tierCatalog(tt.cores, tt.required...)
			got, err := Tiers(context.Background(), cat, TierOptions{Now: tierNow, Logger: quietLogger()})
			if err != nil {
				t.Fatalf("Tiers() error: %v", err)
			}
			assertEqual(t, "stable", strs(got.StableCores), tt.wantStable)
			assertEqual(t, "weekly", strs(got.WeeklyCores), tt.wantWeekly)
		})
	}
}

func TestTiersMaxAge(t *testing.T) {
	cat := tierCatalog([]core{
		{"2.430", day(2024, 5, 1)},
		{"2.420", day(2024, 3, 1)},
		{"2.410", day(2024, 1, 1)},
	}, "2.430", "2.420", "2.410")

	got, err := Tiers(context.Background(), cat, TierOptions{Now: tierNow, MaxAge: 60 * 24 * time.Hour, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Tiers() error: %v", err)
	}
	assertEqual(t, "weekly", strs(got.WeeklyCores), []string{"2.420", "2.430"})
}

func TestTierListJSON(t *testing.T) {
	l := TierList{
		StableCores: []version.Number{version.MustParse("2.426.1")},
		WeeklyCores: []version.Number{version.MustParse("2.427")},
	}
	b, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(b), `{"stableCores":["2.426.1"],"weeklyCores":["2.427"]}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}
