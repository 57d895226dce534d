package cache

// Keyer builds cache keys for the data the update center caches.
type Keyer interface {
	// HTTPKey returns the key for a cached HTTP response.
	HTTPKey(namespace, key string) string

	// MetadataKey returns the key for the version list of an artifact.
	MetadataKey(groupID, artifactID string) string

	// ManifestKey returns the key for a parsed artifact manifest.
	ManifestKey(coordinates string) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// MetadataKey returns "metadata:<hash>".
func (DefaultKeyer) MetadataKey(groupID, artifactID string) string {
	return hashKey("metadata", groupID, artifactID)
}

// ManifestKey returns "manifest:<hash>". Released artifacts never
// change, so manifests can be cached without expiry.
func (DefaultKeyer) ManifestKey(coordinates string) string {
	return hashKey("manifest", coordinates)
}
