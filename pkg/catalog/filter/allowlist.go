package filter

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/errors"
)

// AllowAll is the list entry admitting every version.
const AllowAll = "*"

// AllowList names the artifacts a catalog may advertise. Each entry is
// either [AllowAll] or a whitespace-separated list of exact versions.
//
//	core = "2.361.4 2.375.1"
//
//	[plugins]
//	git = "*"
//	matrix-auth = "3.1.5 3.1.6"
type AllowList struct {
	Core    string            `toml:"core" yaml:"core"`
	Plugins map[string]string `toml:"plugins" yaml:"plugins"`
}

// LoadAllowList reads an allow list from a TOML or YAML file, chosen by
// extension (.yaml and .yml are YAML, anything else TOML).
func LoadAllowList(path string) (*AllowList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read allow list %s", path)
	}
	var list AllowList
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &list)
	default:
		err = toml.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse allow list %s", path)
	}
	return &list, nil
}

func allowed(entry, v string) bool {
	entry = strings.TrimSpace(entry)
	return entry == AllowAll || slices.Contains(strings.Fields(entry), v)
}

// Allowed drops every artifact its list does not name. Plugins without
// an entry are dropped; with no core entry no platform release is kept.
type Allowed struct {
	catalog.Catalog
	list   *AllowList
	logger *log.Logger
}

// NewAllowed wraps inner. A nil logger means log.Default().
func NewAllowed(inner catalog.Catalog, list *AllowList, logger *log.Logger) *Allowed {
	if list == nil {
		list = &AllowList{}
	}
	return &Allowed{Catalog: inner, list: list, logger: loggerOrDefault(logger)}
}

// PluginHistories implements catalog.Catalog.
func (f *Allowed) PluginHistories(ctx context.Context) ([]*catalog.PluginHistory, error) {
	in, err := f.Catalog.PluginHistories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*catalog.PluginHistory, 0, len(in))
	for _, h := range in {
		entry, ok := f.list.Plugins[h.ID]
		if !ok {
			continue
		}
		kept := h.Retain(func(a *catalog.Artifact) bool { return allowed(entry, a.Version) })
		if kept.Len() == 0 {
			f.logger.Warn("allowed versions matched no release", "plugin", h.ID, "versions", entry)
			continue
		}
		out = append(out, kept)
	}
	reportPlugins(ctx, "allow-list", in, out)
	return out, nil
}

// PlatformReleases implements catalog.Catalog.
func (f *Allowed) PlatformReleases(ctx context.Context) (*catalog.PlatformReleases, error) {
	if strings.TrimSpace(f.list.Core) == "" {
		return catalog.NewPlatformReleases(), nil
	}
	in, err := f.Catalog.PlatformReleases(ctx)
	if err != nil {
		return nil, err
	}
	out := in.Retain(func(r *catalog.PlatformRelease) bool { return allowed(f.list.Core, r.Version.String()) })
	reportPlatform(ctx, "allow-list", in, out)
	return out, nil
}
