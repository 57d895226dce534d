package maven

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matzehuels/updatecenter/pkg/cache"
	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/integrations"
	"github.com/matzehuels/updatecenter/pkg/manifest"
)

// DefaultRepository is the Jenkins release repository.
const DefaultRepository = "https://repo.jenkins-ci.org/releases"

// Metadata is the version listing of one artifact, read from the
// repository's maven-metadata.xml.
type Metadata struct {
	GroupID     string    `json:"group_id"`
	ArtifactID  string    `json:"artifact_id"`
	Latest      string    `json:"latest,omitempty"`
	Release     string    `json:"release,omitempty"`
	Versions    []string  `json:"versions"`
	LastUpdated time.Time `json:"last_updated,omitzero"`
}

// Client provides access to a Maven-layout repository.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	keyer   cache.Keyer
}

// NewClient creates a client for the repository at baseURL (an empty
// baseURL selects [DefaultRepository]). Version listings are cached for
// ttl; manifests of released artifacts are cached without expiry.
func NewClient(c cache.Cache, baseURL string, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultRepository
	}
	baseURL = strings.TrimRight(baseURL, "/")
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "repo:"+baseURL+":")
	return &Client{
		Client:  integrations.NewClient(c, "maven:", ttl, nil).WithKeyer(keyer),
		baseURL: baseURL,
		keyer:   keyer,
	}
}

// BaseURL returns the repository root.
func (c *Client) BaseURL() string { return c.baseURL }

// URL returns the absolute URL of an artifact file.
func (c *Client) URL(coords catalog.Coordinates) string {
	return c.baseURL + "/" + coords.Path()
}

// FetchMetadata retrieves the version listing of groupID:artifactID.
//
// If refresh is true, the cache is bypassed.
//
// Returns [integrations.ErrNotFound] if the repository has no metadata
// for the artifact and [integrations.ErrNetwork] for HTTP failures.
func (c *Client) FetchMetadata(ctx context.Context, groupID, artifactID string, refresh bool) (*Metadata, error) {
	if groupID == "" || artifactID == "" {
		return nil, fmt.Errorf("invalid maven coordinate %q (expected groupId:artifactId)", groupID+":"+artifactID)
	}

	var md Metadata
	key := c.keyer.MetadataKey(groupID, artifactID)
	err := c.CachedTTL(ctx, key, c.TTL(), refresh, &md, func() error {
		return c.fetchMetadata(ctx, groupID, artifactID, &md)
	})
	if err != nil {
		return nil, err
	}
	return &md, nil
}

func (c *Client) fetchMetadata(ctx context.Context, groupID, artifactID string, md *Metadata) error {
	url := fmt.Sprintf("%s/%s/%s/maven-metadata.xml", c.baseURL, strings.ReplaceAll(groupID, ".", "/"), artifactID)
	data, err := c.GetBytes(ctx, url)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: maven metadata %s:%s", err, groupID, artifactID)
		}
		return err
	}
	parsed, err := parseMetadata(data)
	if err != nil {
		return fmt.Errorf("maven metadata %s:%s: %w", groupID, artifactID, err)
	}
	if parsed.GroupID == "" {
		parsed.GroupID = groupID
	}
	if parsed.ArtifactID == "" {
		parsed.ArtifactID = artifactID
	}
	*md = *parsed
	return nil
}

// Checksums retrieves the .sha1 and .sha256 sidecars of an artifact.
// A sidecar the repository does not publish leaves its digest empty.
func (c *Client) Checksums(ctx context.Context, coords catalog.Coordinates) (catalog.Digests, error) {
	var d catalog.Digests
	for _, sc := range []struct {
		ext string
		dst *string
	}{{"sha1", &d.SHA1}, {"sha256", &d.SHA256}} {
		text, err := c.GetText(ctx, c.URL(coords)+"."+sc.ext)
		if errors.Is(err, integrations.ErrNotFound) {
			continue
		}
		if err != nil {
			return catalog.Digests{}, fmt.Errorf("%s checksum of %s: %w", sc.ext, coords, err)
		}
		if fields := strings.Fields(text); len(fields) > 0 {
			*sc.dst = strings.ToLower(fields[0])
		}
	}
	return d, nil
}

// DownloadArtifact streams the artifact file into w.
func (c *Client) DownloadArtifact(ctx context.Context, coords catalog.Coordinates, w io.Writer) (int64, error) {
	return c.Download(ctx, c.URL(coords), w)
}

// FetchArtifact downloads the artifact file into memory.
func (c *Client) FetchArtifact(ctx context.Context, coords catalog.Coordinates) ([]byte, error) {
	return c.GetBytes(ctx, c.URL(coords))
}

// FetchManifest returns the main manifest section of an artifact. Parsed
// manifests are cached; the archive is only downloaded on a miss.
func (c *Client) FetchManifest(ctx context.Context, coords catalog.Coordinates, refresh bool) (manifest.Manifest, error) {
	var mf manifest.Manifest
	key := c.keyer.ManifestKey(coords.String())
	err := c.CachedTTL(ctx, key, 0, refresh, &mf, func() error {
		data, err := c.FetchArtifact(ctx, coords)
		if err != nil {
			return err
		}
		parsed, err := manifest.FromArchive(data)
		if err != nil {
			return err
		}
		mf = parsed
		return nil
	})
	return mf, err
}

// FetchZipEntry downloads an artifact and returns one entry of it.
func (c *Client) FetchZipEntry(ctx context.Context, coords catalog.Coordinates, name string) ([]byte, error) {
	data, err := c.FetchArtifact(ctx, coords)
	if err != nil {
		return nil, err
	}
	return manifest.ArchiveEntry(data, name)
}

// ParseCoordinate splits a "groupId:artifactId" coordinate.
func ParseCoordinate(coord string) (groupID, artifactID string, err error) {
	parts := strings.Split(coord, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid maven coordinate %q (expected groupId:artifactId)", coord)
	}
	return parts[0], parts[1], nil
}

type metadataXML struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Versioning struct {
		Latest      string   `xml:"latest"`
		Release     string   `xml:"release"`
		Versions    []string `xml:"versions>version"`
		LastUpdated string   `xml:"lastUpdated"`
	} `xml:"versioning"`
}

const lastUpdatedLayout = "20060102150405"

func parseMetadata(data []byte) (*Metadata, error) {
	var doc metadataXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	md := &Metadata{
		GroupID:    strings.TrimSpace(doc.GroupID),
		ArtifactID: strings.TrimSpace(doc.ArtifactID),
		Latest:     strings.TrimSpace(doc.Versioning.Latest),
		Release:    strings.TrimSpace(doc.Versioning.Release),
	}
	seen := make(map[string]bool, len(doc.Versioning.Versions))
	for _, v := range doc.Versioning.Versions {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		md.Versions = append(md.Versions, v)
	}
	if ts := strings.TrimSpace(doc.Versioning.LastUpdated); ts != "" {
		if t, err := time.Parse(lastUpdatedLayout, ts); err == nil {
			md.LastUpdated = t
		}
	}
	return md, nil
}
