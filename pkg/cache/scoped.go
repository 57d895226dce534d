package cache

// ScopedKeyer wraps a Keyer with a prefix so that several repositories
// can share one cache without key collisions.
//
//	central := NewScopedKeyer(NewDefaultKeyer(), "repo:releases:")
//	mirror := NewScopedKeyer(NewDefaultKeyer(), "repo:mirror:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// MetadataKey generates a prefixed key for version lists.
func (k *ScopedKeyer) MetadataKey(groupID, artifactID string) string {
	return k.prefix + k.inner.MetadataKey(groupID, artifactID)
}

// ManifestKey generates a prefixed key for manifests.
func (k *ScopedKeyer) ManifestKey(coordinates string) string {
	return k.prefix + k.inner.ManifestKey(coordinates)
}
