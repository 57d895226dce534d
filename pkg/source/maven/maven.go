// Package maven exposes a remote Maven-layout repository as a catalog.
//
// Platform releases come from the maven-metadata.xml of the core WAR
// artifact; plugin histories from the metadata of each configured plugin.
// Manifests are read lazily from the downloaded archives and cached.
//
//	client := mavenapi.NewClient(c, mavenapi.DefaultRepository, time.Hour)
//	cat := maven.New(client, maven.Options{Plugins: []string{"git", "credentials"}})
//	histories, err := cat.PluginHistories(ctx)
package maven

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/errors"
	mavenapi "github.com/matzehuels/updatecenter/pkg/integrations/maven"
	"github.com/matzehuels/updatecenter/pkg/manifest"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// Defaults for Options.
const (
	DefaultPluginGroup    = "org.jenkins-ci.plugins"
	DefaultCoreGroupID    = "org.jenkins-ci.main"
	DefaultCoreArtifactID = "jenkins-war"
	DefaultWorkers        = 8
)

// Options configures a repository catalog.
type Options struct {
	// Plugins lists the plugins to load, as "groupId:artifactId" or a bare
	// artifactId in DefaultPluginGroup. Histories keep this order.
	Plugins []string

	// CoreGroupID and CoreArtifactID locate the platform WAR.
	CoreGroupID    string
	CoreArtifactID string

	// SkipCore leaves the platform release list empty.
	SkipCore bool

	// Workers bounds concurrent metadata fetches.
	Workers int

	// Refresh bypasses cached metadata and manifests.
	Refresh bool

	// DownloadDir is where Resolve stores artifacts. Resolve is
	// unsupported without it.
	DownloadDir string

	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.CoreGroupID == "" {
		o.CoreGroupID = DefaultCoreGroupID
	}
	if o.CoreArtifactID == "" {
		o.CoreArtifactID = DefaultCoreArtifactID
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Catalog is a catalog backed by a Maven repository. The release lists
// are fetched once, on first use; later calls return fresh snapshots.
type Catalog struct {
	client *mavenapi.Client
	opts   Options

	mu     sync.Mutex
	loaded *catalog.Memory
}

// New creates a repository catalog.
func New(client *mavenapi.Client, opts Options) *Catalog {
	return &Catalog{client: client, opts: opts.withDefaults()}
}

// Load fetches the release lists. It is called implicitly by the
// catalog views; a failed load is retried on the next call.
func (c *Catalog) Load(ctx context.Context) error {
	_, err := c.memory(ctx)
	return err
}

func (c *Catalog) memory(ctx context.Context) (*catalog.Memory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded != nil {
		return c.loaded, nil
	}

	m := catalog.NewMemory()
	if !c.opts.SkipCore {
		if err := c.loadCore(ctx, m); err != nil {
			return nil, err
		}
	}
	if err := c.loadPlugins(ctx, m); err != nil {
		return nil, err
	}
	c.loaded = m
	return m, nil
}

func (c *Catalog) loadCore(ctx context.Context, m *catalog.Memory) error {
	md, err := c.client.FetchMetadata(ctx, c.opts.CoreGroupID, c.opts.CoreArtifactID, c.opts.Refresh)
	if err != nil {
		return fmt.Errorf("core releases: %w", err)
	}
	for _, raw := range md.Versions {
		v, err := version.Parse(raw)
		if err != nil {
			c.opts.Logger.Debug("skipping core release", "version", raw, "error", err)
			continue
		}
		m.AddPlatformRelease(&catalog.PlatformRelease{
			Version: v,
			Coordinates: catalog.Coordinates{
				GroupID:    c.opts.CoreGroupID,
				ArtifactID: c.opts.CoreArtifactID,
				Version:    raw,
				Packaging:  catalog.PackagingWAR,
			},
		})
	}
	return nil
}

type job struct {
	index      int
	groupID    string
	artifactID string
}

type result struct {
	job
	md  *mavenapi.Metadata
	err error
}

// loadPlugins fetches plugin metadata with a bounded worker pool.
// Malformed plugin names fail the load; plugins whose metadata cannot be
// read are logged and skipped.
func (c *Catalog) loadPlugins(ctx context.Context, m *catalog.Memory) error {
	jobs := make([]job, 0, len(c.opts.Plugins))
	for i, p := range c.opts.Plugins {
		g, a := splitPlugin(p)
		if err := errors.ValidateGroupID(g); err != nil {
			return err
		}
		if err := errors.ValidatePluginID(a); err != nil {
			return err
		}
		jobs = append(jobs, job{index: i, groupID: g, artifactID: a})
	}

	queue := make(chan job)
	results := make([]result, len(jobs))
	var wg sync.WaitGroup
	for range min(c.opts.Workers, max(len(jobs), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				md, err := c.client.FetchMetadata(ctx, j.groupID, j.artifactID, c.opts.Refresh)
				results[j.index] = result{job: j, md: md, err: err}
			}
		}()
	}

send:
	for _, j := range jobs {
		select {
		case queue <- j:
		case <-ctx.Done():
			break send
		}
	}
	close(queue)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, r := range results {
		if r.err != nil {
			c.opts.Logger.Warn("fetch failed", "plugin", r.groupID+":"+r.artifactID, "error", r.err)
			continue
		}
		for _, v := range r.md.Versions {
			coords := catalog.Coordinates{
				GroupID:    r.groupID,
				ArtifactID: r.artifactID,
				Version:    v,
				Packaging:  catalog.PackagingHPI,
			}
			m.AddArtifact(catalog.NewArtifact(coords, c.manifestSource(coords)))
		}
	}
	return nil
}

func (c *Catalog) manifestSource(coords catalog.Coordinates) catalog.ManifestSource {
	return func(ctx context.Context) (manifest.Manifest, error) {
		return c.client.FetchManifest(ctx, coords, c.opts.Refresh)
	}
}

func splitPlugin(p string) (groupID, artifactID string) {
	if g, a, ok := strings.Cut(p, ":"); ok {
		return g, a
	}
	return DefaultPluginGroup, p
}

// PlatformReleases implements catalog.Catalog.
func (c *Catalog) PlatformReleases(ctx context.Context) (*catalog.PlatformReleases, error) {
	m, err := c.memory(ctx)
	if err != nil {
		return nil, err
	}
	return m.PlatformReleases(ctx)
}

// PluginHistories implements catalog.Catalog.
func (c *Catalog) PluginHistories(ctx context.Context) ([]*catalog.PluginHistory, error) {
	m, err := c.memory(ctx)
	if err != nil {
		return nil, err
	}
	return m.PluginHistories(ctx)
}

// AllArtifacts implements catalog.Catalog.
func (c *Catalog) AllArtifacts(ctx context.Context) ([]catalog.Coordinates, error) {
	m, err := c.memory(ctx)
	if err != nil {
		return nil, err
	}
	return m.AllArtifacts(ctx)
}

// Digests implements catalog.Catalog using the repository checksum files.
func (c *Catalog) Digests(ctx context.Context, coords catalog.Coordinates) (catalog.Digests, error) {
	return c.client.Checksums(ctx, coords)
}

// Manifest implements catalog.Catalog.
func (c *Catalog) Manifest(ctx context.Context, coords catalog.Coordinates) (manifest.Manifest, error) {
	return c.client.FetchManifest(ctx, coords, c.opts.Refresh)
}

// ZipEntry implements catalog.Catalog. The whole archive is downloaded.
func (c *Catalog) ZipEntry(ctx context.Context, coords catalog.Coordinates, path string) (io.ReadCloser, error) {
	data, err := c.client.FetchZipEntry(ctx, coords, path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Resolve implements catalog.Catalog by downloading the artifact into
// DownloadDir, mirroring the repository layout. Existing files are reused.
func (c *Catalog) Resolve(ctx context.Context, coords catalog.Coordinates) (string, error) {
	if c.opts.DownloadDir == "" {
		return "", errors.New(errors.ErrCodeUnsupported, "no download directory configured for %s", coords)
	}
	dst := filepath.Join(c.opts.DownloadDir, filepath.FromSlash(coords.Path()))
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".download-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := c.client.DownloadArtifact(ctx, coords, tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("download %s: %w", coords, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", err
	}
	c.opts.Logger.Debug("downloaded artifact", "artifact", coords.String(), "path", dst)
	return dst, nil
}

// Ensure Catalog implements catalog.Catalog.
var _ catalog.Catalog = (*Catalog)(nil)
