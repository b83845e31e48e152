package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	domsearch "github.com/bryanwahyu/rivalscan/internal/domain/search"
)

// Cached wraps a Searcher with an in-memory TTL cache so repeated analyses of
// the same query do not burn provider quota.
type Cached struct {
	next domsearch.Searcher
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	resp      *domsearch.Response
	expiresAt time.Time
}

var _ domsearch.Searcher = (*Cached)(nil)

func WithCache(next domsearch.Searcher, ttl time.Duration) *Cached {
	return &Cached{
		next:    next,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cached) Search(ctx context.Context, req *domsearch.Request) (*domsearch.Response, error) {
	key := cacheKey(req)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	// Expiry dicek lazy saat akses, tidak ada goroutine pembersih.
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.resp, nil
	}

	resp, err := c.next.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{resp: resp, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return resp, nil
}

func cacheKey(req *domsearch.Request) string {
	return fmt.Sprintf("%s|%s|%s|%d", req.Query, req.Period, req.Region, req.MaxResults)
}
