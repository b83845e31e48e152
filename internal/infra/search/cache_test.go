package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domsearch "github.com/bryanwahyu/rivalscan/internal/domain/search"
)

type countingSearcher struct {
	calls int
	err   error
}

func (c *countingSearcher) Search(_ context.Context, req *domsearch.Request) (*domsearch.Response, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &domsearch.Response{Provider: "fake", Query: req.Query}, nil
}

func TestCachedReusesFreshEntries(t *testing.T) {
	inner := &countingSearcher{}
	cached := WithCache(inner, time.Hour)

	req := &domsearch.Request{Query: "fintech startups", MaxResults: 20}
	first, err := cached.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := cached.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Same(t, first, second)
}

func TestCachedDistinguishesRequests(t *testing.T) {
	inner := &countingSearcher{}
	cached := WithCache(inner, time.Hour)

	_, err := cached.Search(context.Background(), &domsearch.Request{Query: "fintech"})
	require.NoError(t, err)
	_, err = cached.Search(context.Background(), &domsearch.Request{Query: "fintech", Region: "Germany"})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedExpiredEntryRefetches(t *testing.T) {
	inner := &countingSearcher{}
	// TTL negatif: entri langsung kedaluwarsa.
	cached := WithCache(inner, -time.Minute)

	req := &domsearch.Request{Query: "healthtech"}
	_, err := cached.Search(context.Background(), req)
	require.NoError(t, err)
	_, err = cached.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	inner := &countingSearcher{err: errors.New("boom")}
	cached := WithCache(inner, time.Hour)

	req := &domsearch.Request{Query: "edtech"}
	_, err := cached.Search(context.Background(), req)
	require.Error(t, err)

	inner.err = nil
	_, err = cached.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
