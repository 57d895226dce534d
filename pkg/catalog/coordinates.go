package catalog

import (
	"path"
	"strings"
)

// Packaging types used by the update center.
const (
	PackagingHPI = "hpi"
	PackagingJPI = "jpi"
	PackagingWAR = "war"
)

// Coordinates identify one artifact in a Maven-layout repository.
type Coordinates struct {
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
	Packaging  string `json:"packaging"`
}

// String returns "groupId:artifactId:version:packaging".
func (c Coordinates) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version + ":" + c.Packaging
}

// Dir returns the repository directory holding the artifact, e.g.
// "org/jenkins-ci/plugins/git/5.2.0".
func (c Coordinates) Dir() string {
	return path.Join(strings.ReplaceAll(c.GroupID, ".", "/"), c.ArtifactID, c.Version)
}

// Filename returns the artifact file name, e.g. "git-5.2.0.hpi".
func (c Coordinates) Filename() string {
	return c.ArtifactID + "-" + c.Version + "." + c.Packaging
}

// Path returns the repository-relative path of the artifact file.
func (c Coordinates) Path() string {
	return path.Join(c.Dir(), c.Filename())
}
