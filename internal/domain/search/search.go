package search

import (
	"context"
	"errors"
	"time"

	"github.com/bryanwahyu/rivalscan/internal/domain/analysis"
)

// ErrMissingCredentials is returned by providers that need an API key
// before any request can be made.
var ErrMissingCredentials = errors.New("missing search credentials")

// Request is a provider-independent search request.
// Period and Region carry the form labels; each provider maps them
// to its own query parameters.
type Request struct {
	Query      string
	Period     analysis.TimePeriod
	Region     analysis.Region
	MaxResults int
}

// Result is one provider-independent search hit.
type Result struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Response wraps the hits of a single search call.
type Response struct {
	Provider string   `json:"provider"`
	Query    string   `json:"query"`
	Results  []Result `json:"results"`
}

// Searcher port (interface untuk backend pencarian web)
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}
