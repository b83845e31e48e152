package ai

import (
	"context"

	"github.com/bryanwahyu/rivalscan/internal/domain/search"
)

// Competitor is one structured competitor extracted by the model.
type Competitor struct {
	Name              string `json:"name"`
	Website           string `json:"website"`
	Description       string `json:"description"`
	KeyDifferentiator string `json:"key_differentiator"`
}

// Client port untuk provider chat-completion.
// Every call is a single request; malformed model output is handled by
// the provider adapters with documented fallbacks, transport failures
// come back as errors.
type Client interface {
	// Industries asks for up to 3 industry labels for a pitch.
	Industries(ctx context.Context, startupName, pitch string) ([]string, error)
	// SearchQuery asks for one concise web-search query.
	SearchQuery(ctx context.Context, startupName, pitch, industry string) (string, error)
	// Competitors extracts exactly 3 competitors from raw search results.
	Competitors(ctx context.Context, industry string, results []search.Result) ([]Competitor, error)
	// Commentary produces a short market-positioning note.
	Commentary(ctx context.Context, startupName, pitch, industry string) (string, error)
}
