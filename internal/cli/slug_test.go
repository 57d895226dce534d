package cli

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSlugCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "slug", "https://github.com/jenkinsci/git-plugin.git")
	if err != nil {
		t.Fatalf("slug: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "jenkinsci/git-plugin" {
		t.Errorf("slug = %q", got)
	}

	stdout, _, err = runCLI(t, "slug", "--json", "https://github.com/jenkinsci/git-plugin")
	if err != nil {
		t.Fatalf("slug --json: %v", err)
	}
	var v map[string]string
	if err := json.Unmarshal([]byte(stdout), &v); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(v) != 2 {
		t.Errorf("json = %v", v)
	}

	if _, _, err := runCLI(t, "slug", "not a url"); err == nil {
		t.Error("expected error for invalid url")
	}
}
