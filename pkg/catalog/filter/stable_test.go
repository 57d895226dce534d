package filter

import "testing"

func TestStable(t *testing.T) {
	base := newCatalog([]string{"1.625", "1.625.3", "2.0", "2.60.1", "2.60.0"}, release{id: "git", version: "1.0"})
	f := NewStable(base)

	assertEqual(t, "platform", platformVersions(t, f), []string{"1.625.3", "2.60.0", "2.60.1"})
	assertEqual(t, "plugins", histories(t, f), map[string][]string{"git": {"1.0"}})
}
