package search

import (
	"fmt"
	"strings"
	"time"

	domsearch "github.com/bryanwahyu/rivalscan/internal/domain/search"
	"github.com/bryanwahyu/rivalscan/internal/infra/search/brave"
	"github.com/bryanwahyu/rivalscan/internal/infra/search/duckduckgo"
	"github.com/bryanwahyu/rivalscan/internal/infra/search/googlenews"
)

// Options carries provider construction settings.
type Options struct {
	BraveAPIKey string
	Timeout     time.Duration
}

// New builds the configured search backend. A missing Brave key is not an
// error here; the client reports it per request so the web UI can show the
// credential banner instead of the server refusing to start.
func New(provider string, opts Options) (domsearch.Searcher, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "brave":
		return brave.NewClient(opts.BraveAPIKey, opts.Timeout), nil
	case "duckduckgo":
		return duckduckgo.NewClient(opts.Timeout), nil
	case "googlenews":
		return googlenews.NewClient(opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
