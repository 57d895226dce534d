package integrations

import (
	"context"
	"net/http"
	"time"

	"github.com/matzehuels/updatecenter/pkg/cache"
)

const httpTimeout = 30 * time.Second

// RunIDHeader carries the run identifier on outgoing requests so that
// repository logs can be correlated with a filter run.
const RunIDHeader = "X-Run-ID"

var (
	// ErrNotFound is returned when an artifact or resource doesn't exist.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = cache.ErrNetwork
)

// NewHTTPClient creates an HTTP client with a standard timeout for repository requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

type runIDKey struct{}

// WithRunID returns a context whose requests carry id in [RunIDHeader].
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run identifier stored by WithRunID, if any.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
