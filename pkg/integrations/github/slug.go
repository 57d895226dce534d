package github

import (
	"strings"

	"github.com/matzehuels/updatecenter/pkg/errors"
)

const (
	host   = "github.com"
	prefix = "https://github.com/"
)

// Slug identifies a GitHub repository.
type Slug struct {
	Organization string `json:"organization"`
	Name         string `json:"name"`
}

// String returns "organization/name".
func (s Slug) String() string {
	return s.Organization + "/" + s.Name
}

// ParseSlug converts "https://github.com/{org}/{name}[.git][/]" into a
// Slug. Path segments after the repository name are ignored.
func ParseSlug(url string) (Slug, error) {
	if strings.TrimSpace(url) == "" {
		return Slug{}, errors.New(errors.ErrCodeInvalidInput, "URL must be present")
	}
	if !strings.Contains(url, host) {
		return Slug{}, errors.New(errors.ErrCodeInvalidInput, "Invalid url: %s", url)
	}

	s := strings.TrimSpace(url)
	s = strings.TrimPrefix(s, prefix)
	s = strings.TrimRight(s, "/")
	s = strings.TrimSuffix(s, ".git")
	s = strings.TrimRight(s, "/")

	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Slug{}, errors.New(errors.ErrCodeInvalidInput, "Invalid url: %s", url)
	}
	return Slug{Organization: parts[0], Name: strings.TrimSuffix(parts[1], ".git")}, nil
}
