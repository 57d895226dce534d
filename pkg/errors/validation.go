package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePluginID validates a plugin identifier (Maven artifactId).
// It rejects names that could escape a repository layout when joined
// into a path or URL.
func ValidatePluginID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "plugin id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "plugin id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "plugin id contains invalid control characters")
		}
	}
	if !pluginIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid plugin id: %q", id)
	}
	return nil
}

var pluginIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateGroupID validates a Maven groupId such as "org.jenkins-ci.plugins".
func ValidateGroupID(group string) error {
	if group == "" {
		return New(ErrCodeInvalidInput, "group id cannot be empty")
	}
	if strings.Contains(group, "..") || strings.ContainsAny(group, "/\\") {
		return New(ErrCodeInvalidInput, "group id contains invalid characters: %q", group)
	}
	if !groupIDRegex.MatchString(group) {
		return New(ErrCodeInvalidInput, "invalid group id: %q", group)
	}
	return nil
}

var groupIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}
