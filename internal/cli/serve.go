package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/catalog/filter"
	uerrors "github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/integrations"
	"github.com/matzehuels/updatecenter/pkg/version"
)

const (
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve filtered update-center documents over HTTP",
		Long: `Serve loads a catalog once and answers every request with a freshly
filtered view of it.

Endpoints:
  GET /update-center.json   newest core and plugin releases
                            (?core=<version> caps required core, ?java=<version> caps Java)
  GET /plugins/{id}         every remaining release of one plugin
  GET /cores                remaining core releases
  GET /healthz              liveness
  GET /metrics              Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(c, cmd)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&flags.cfg.Serve.Addr, "addr", defaultConfig().Serve.Addr, "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg Config) error {
	logger := c.Logger
	opts, err := cfg.Filter.filterOptions(logger)
	if err != nil {
		return err
	}

	src, err := openSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	newPromHooks(reg).install()

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           newServer(src, opts, reg, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving update center", "addr", cfg.Serve.Addr, "source", src.desc)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return ctx.Err()
}

// =============================================================================
// Handlers
// =============================================================================

type server struct {
	base     catalog.Catalog
	opts     filter.Options
	registry *prometheus.Registry
	logger   *log.Logger
}

func newServer(base catalog.Catalog, opts filter.Options, reg *prometheus.Registry, logger *log.Logger) *server {
	return &server{base: base, opts: opts, registry: reg, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Get("/update-center.json", s.handleUpdateCenter)
	r.Get("/cores", s.handleCores)
	r.Get("/plugins/{id}", s.handlePlugin)
	return r
}

// requestContext attaches a run id and the request logger.
func (s *server) requestContext(r *http.Request) (context.Context, string) {
	runID := uuid.NewString()
	logger := s.logger.With("run", runID[:8], "request", middleware.GetReqID(r.Context()))
	return integrations.WithRunID(withLogger(r.Context(), logger), runID), runID
}

// chain builds the filter chain. ?core= and ?java= tighten the configured
// caps; a value looser than the configured one is ignored.
func (s *server) chain(r *http.Request) (catalog.Catalog, error) {
	opts := s.opts
	q := r.URL.Query()
	if v := q.Get("core"); v != "" {
		n, err := version.Parse(v)
		if err != nil {
			return nil, uerrors.Wrap(uerrors.ErrCodeInvalidInput, err, "core parameter")
		}
		if opts.CapPlugin.IsZero() || n.IsOlderThan(opts.CapPlugin) {
			opts.CapPlugin = n
		}
	}
	if v := q.Get("java"); v != "" {
		j, err := version.ParseJava(v)
		if err != nil {
			return nil, uerrors.Wrap(uerrors.ErrCodeInvalidInput, err, "java parameter")
		}
		if opts.JavaVersion.IsZero() || j.IsOlderThan(opts.JavaVersion) {
			opts.JavaVersion = j
		}
	}
	return filter.Build(s.base, opts), nil
}

func (s *server) handleUpdateCenter(w http.ResponseWriter, r *http.Request) {
	ctx, runID := s.requestContext(r)
	cat, err := s.chain(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	uc, err := buildUpdateCenter(ctx, cat, runID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, uc)
}

func (s *server) handleCores(w http.ResponseWriter, r *http.Request) {
	ctx, _ := s.requestContext(r)
	cat, err := s.chain(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	platform, err := cat.PlatformReleases(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cores := make([]*coreEntry, 0, platform.Len())
	for _, rel := range platform.Releases() {
		cores = append(cores, newCoreEntry(ctx, cat, rel))
	}
	writeJSON(w, http.StatusOK, cores)
}

func (s *server) handlePlugin(w http.ResponseWriter, r *http.Request) {
	ctx, _ := s.requestContext(r)
	id := chi.URLParam(r, "id")
	cat, err := s.chain(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	histories, err := cat.PluginHistories(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, h := range histories {
		if h.ID != id {
			continue
		}
		releases := make([]pluginEntry, 0, h.Len())
		for _, a := range h.Releases() {
			releases = append(releases, newPluginEntry(ctx, cat, a))
		}
		writeJSON(w, http.StatusOK, releases)
		return
	}
	s.writeError(w, r, uerrors.New(uerrors.ErrCodeNotFound, "plugin %q not found", id))
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch uerrors.GetCode(err) {
	case uerrors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case uerrors.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": uerrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs each request at debug level with status and latency.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}
