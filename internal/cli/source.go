package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/cache"
	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/errors"
	mavenapi "github.com/matzehuels/updatecenter/pkg/integrations/maven"
	"github.com/matzehuels/updatecenter/pkg/source/index"
	"github.com/matzehuels/updatecenter/pkg/source/maven"
)

// source is an opened base catalog and the cache backing it.
type source struct {
	catalog.Catalog
	cache cache.Cache
	desc  string
}

func (s *source) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}

// openSource opens the base catalog named by cfg: a local index when
// Index is set, otherwise the Maven repository.
func openSource(ctx context.Context, cfg Config, logger *log.Logger) (*source, error) {
	if cfg.Index != "" {
		m, err := index.Load(cfg.Index)
		if err != nil {
			return nil, err
		}
		return &source{Catalog: m, desc: cfg.Index}, nil
	}
	if cfg.Repository == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no catalog source: set --index or --repository")
	}
	if err := errors.ValidateURL(cfg.Repository); err != nil {
		return nil, err
	}

	c, err := newCache(cfg.Cache, cfg.NoCache)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open cache")
	}
	client := mavenapi.NewClient(c, cfg.Repository, cfg.CacheTTL)
	cat := maven.New(client, maven.Options{
		Plugins:     cfg.Plugins,
		DownloadDir: cfg.DownloadDir,
		Refresh:     cfg.NoCache,
		Logger:      logger,
	})
	if err := cat.Load(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return &source{Catalog: cat, cache: c, desc: client.BaseURL()}, nil
}
