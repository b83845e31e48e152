package memory

import (
	"context"
	"sync"
	"time"

	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysiserrors"
)

type AnalysisErrorRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []*domain.AnalysisError
}

func NewAnalysisErrorRepository() *AnalysisErrorRepository {
	return &AnalysisErrorRepository{}
}

func (r *AnalysisErrorRepository) Save(_ context.Context, e *domain.AnalysisError) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *e
	cp.ID = r.nextID
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.items = append(r.items, &cp)
	return nil
}

func (r *AnalysisErrorRepository) ListByAnalysis(_ context.Context, analysisID string, limit int) ([]*domain.AnalysisError, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.AnalysisError
	// newest first, insertion id breaks ties
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if string(r.items[i].AnalysisID) != analysisID {
			continue
		}
		cp := *r.items[i]
		out = append(out, &cp)
	}
	return out, nil
}
