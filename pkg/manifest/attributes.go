package manifest

import (
	"strings"

	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// Attribute names read by this package.
const (
	AttrJenkinsVersion     = "Jenkins-Version"
	AttrHudsonVersion      = "Hudson-Version"
	AttrMinimumJavaVersion = "Minimum-Java-Version"
	AttrPluginDependencies = "Plugin-Dependencies"
	AttrShortName          = "Short-Name"
	AttrLongName           = "Long-Name"
	AttrURL                = "Url"
)

var (
	// HudsonCutOff is the last Hudson release whose plugins are treated
	// as platform plugins.
	HudsonCutOff = version.MustParse("1.395")

	// FallbackCore is used when a manifest records no usable platform
	// version. Parent POMs 1.393 to 1.398 failed to write one.
	FallbackCore = "1.398"
)

const optionalResolution = ";resolution:=optional"

// RequiredCore returns the platform version the plugin was built
// against, as written in the manifest. It prefers Jenkins-Version, then
// a Hudson-Version no newer than [HudsonCutOff], then [FallbackCore].
// Old packaging tools wrote the literal "null"; it counts as absent.
func (m Manifest) RequiredCore() string {
	if v, ok := m.Get(AttrJenkinsVersion); ok && fixNull(v) != "" {
		return v
	}
	if v := fixNull(m.Value(AttrHudsonVersion)); v != "" {
		if n, err := version.Parse(v); err == nil && n.Compare(HudsonCutOff) <= 0 {
			return v
		}
	}
	return FallbackCore
}

// MinimumJava returns the Minimum-Java-Version attribute. ok is false
// when the attribute is absent or blank; a malformed value is an error.
func (m Manifest) MinimumJava() (spec version.JavaSpec, ok bool, err error) {
	raw := strings.TrimSpace(m.Value(AttrMinimumJavaVersion))
	if raw == "" {
		return version.JavaSpec{}, false, nil
	}
	spec, err = version.ParseJava(raw)
	if err != nil {
		return version.JavaSpec{}, false, err
	}
	return spec, true, nil
}

// Dependency is one entry of the Plugin-Dependencies attribute.
type Dependency struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Optional bool   `json:"optional"`
}

// Dependencies parses the Plugin-Dependencies attribute, a comma
// separated list of "name:version" tokens optionally suffixed with
// ";resolution:=optional".
func (m Manifest) Dependencies() ([]Dependency, error) {
	raw, ok := m.Get(AttrPluginDependencies)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var deps []Dependency
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		var d Dependency
		if strings.HasSuffix(token, optionalResolution) {
			d.Optional = true
			token = strings.TrimSuffix(token, optionalResolution)
		}
		name, ver, found := strings.Cut(token, ":")
		if !found || name == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid plugin dependency %q", token)
		}
		d.Name, d.Version = name, ver
		deps = append(deps, d)
	}
	return deps, nil
}

func fixNull(v string) string {
	if v == "null" {
		return ""
	}
	return v
}
