package search

import (
	"context"

	domsearch "github.com/bryanwahyu/rivalscan/internal/domain/search"
	"github.com/bryanwahyu/rivalscan/internal/middleware"
)

// Instrumented counts outgoing provider calls. Letakkan di dalam cache
// supaya cache hit tidak ikut terhitung.
type Instrumented struct {
	next domsearch.Searcher
}

var _ domsearch.Searcher = (*Instrumented)(nil)

func WithMetrics(next domsearch.Searcher) *Instrumented {
	return &Instrumented{next: next}
}

func (i *Instrumented) Search(ctx context.Context, req *domsearch.Request) (*domsearch.Response, error) {
	middleware.IncrementSearches()
	return i.next.Search(ctx, req)
}
