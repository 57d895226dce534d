package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/source/index"
)

const testIndex = `{
  "cores": [
    {"version": "2.400"},
    {"version": "2.426.1", "sha256": "abc"},
    {"version": "2.440"}
  ],
  "plugins": [
    {"artifactId": "git", "version": "5.0", "manifest": {"Jenkins-Version": "2.400"}},
    {"artifactId": "git", "version": "5.2.0", "sha1": "da39", "manifest": {"Jenkins-Version": "2.426.1", "Long-Name": "Git plugin"}},
    {"artifactId": "git", "version": "6.0-beta-1", "manifest": {"Jenkins-Version": "2.440"}},
    {"artifactId": "ssh", "version": "1.0", "manifest": {"Jenkins-Version": "2.440", "Minimum-Java-Version": "17"}}
  ]
}`

// runCLI executes args against a fresh root command and returns stdout
// and the status output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, ui bytes.Buffer
	uiOut = &ui
	t.Cleanup(func() { uiOut = os.Stderr })

	c := New(&bytes.Buffer{}, LogInfo)
	c.lookupEnv = func(string) (string, bool) { return "", false }
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), ui.String(), err
}

func TestFilterCommandIndex(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "plugins.json", testIndex)
	out := filepath.Join(dir, "filtered.json")

	_, ui, err := runCLI(t, "filter", "-i", in, "-o", out, "--only-stable-core", "--java-version", "11")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if !strings.Contains(ui, "Filtered catalog") || !strings.Contains(ui, out) {
		t.Errorf("status output = %q", ui)
	}

	m, err := index.Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	ctx := context.Background()
	p, _ := m.PlatformReleases(ctx)
	if got := p.Len(); got != 1 {
		t.Errorf("cores = %d, want only the LTS release", got)
	}
	hs, _ := m.PluginHistories(ctx)
	if len(hs) != 1 || hs[0].ID != "git" {
		t.Fatalf("histories = %v, want git only", hs)
	}
	if got := strings.Join(hs[0].Versions(), ","); got != "5.2.0,5.0" {
		t.Errorf("git versions = %s", got)
	}
}

func TestFilterCommandUpdateCenter(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "plugins.json", testIndex)

	stdout, _, err := runCLI(t, "filter", "-i", in, "-f", "update-center", "--limit-plugin-core-dependency", "2.426.1")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}

	var uc updateCenter
	if err := json.Unmarshal([]byte(stdout), &uc); err != nil {
		t.Fatalf("stdout is not an update-center document: %v\n%s", err, stdout)
	}
	if uc.RunID == "" {
		t.Error("run id missing")
	}
	if uc.Core == nil || uc.Core.Version != "2.440" {
		t.Errorf("core = %+v", uc.Core)
	}
	git, ok := uc.Plugins["git"]
	if !ok {
		t.Fatalf("plugins = %v", uc.Plugins)
	}
	if git.Version != "5.2.0" || git.Title != "Git plugin" || git.SHA1 != "da39" || git.RequiredCore != "2.426.1" {
		t.Errorf("git = %+v", git)
	}
	if _, ok := uc.Plugins["ssh"]; ok {
		t.Error("ssh requires a newer core and should be dropped")
	}
}

func TestFilterCommandUpdateCenterFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "plugins.json", testIndex)
	out := filepath.Join(dir, "uc.json")

	stdout, ui, err := runCLI(t, "filter", "-i", in, "-f", "update-center", "-o", out)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want the document in %s only", stdout, out)
	}
	if !strings.Contains(ui, out) {
		t.Errorf("status output = %q", ui)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var uc updateCenter
	if err := json.Unmarshal(data, &uc); err != nil {
		t.Fatalf("output is not an update-center document: %v\n%s", err, data)
	}
	if _, ok := uc.Plugins["git"]; !ok {
		t.Errorf("plugins = %v", uc.Plugins)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".output-") {
			t.Errorf("temporary file %s left behind", e.Name())
		}
	}
}

func TestWriteJSONOutputMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "uc.json")
	if err := writeJSONOutput(map[string]string{"a": "b"}, path, nil); err == nil {
		t.Fatal("writeJSONOutput() succeeded for a missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("stat = %v, want not exist", err)
	}
}

func TestFilterCommandErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "plugins.json", testIndex)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format", []string{"filter", "-i", in, "-f", "xml"}, errors.ErrCodeInvalidInput},
		{"bad version", []string{"filter", "-i", in, "--limit-core-release", "two"}, errors.ErrCodeInvalidInput},
		{"no source", []string{"filter"}, errors.ErrCodeInvalidConfig},
		{"bad repository", []string{"filter", "--repository", "ftp://repo.example"}, errors.ErrCodeInvalidInput},
		{"missing index", []string{"filter", "-i", filepath.Join(dir, "nope.json")}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSummaryTable(t *testing.T) {
	got := summaryTable(catalogStats{Cores: 3, Plugins: 2, Releases: 4}, catalogStats{Cores: 1, Plugins: 1, Releases: 2})
	for _, want := range []string{"before", "after", "dropped", "releases"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}
