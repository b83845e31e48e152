// Package memory keeps analyses in process memory. It backs the zero-config
// mode where no database driver is set and everything is lost on restart.
package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysis"
)

type AnalysisRepository struct {
	mu    sync.RWMutex
	items map[domain.AnalysisID]*domain.Analysis
}

func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{items: make(map[domain.AnalysisID]*domain.Analysis)}
}

func (r *AnalysisRepository) Save(_ context.Context, a *domain.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneAnalysis(a)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.items[a.ID] = stored
	return nil
}

func (r *AnalysisRepository) Get(_ context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		// sql.ErrNoRows supaya mapping 404 di router tetap jalan
		return nil, sql.ErrNoRows
	}
	return cloneAnalysis(a), nil
}

func (r *AnalysisRepository) Latest(_ context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.sortedLocked(nil)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AnalysisRepository) Summary(_ context.Context, sinceDays int) (int, int, float64, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var analyses, competitors int
	var sentimentSum float64
	for _, a := range r.items {
		if a.CreatedAt.Before(cut) {
			continue
		}
		analyses++
		competitors += a.CompetitorsTotal()
		sentimentSum += a.AvgSentiment()
	}
	var avg float64
	if analyses > 0 {
		avg = sentimentSum / float64(analyses)
	}
	return analyses, competitors, avg, nil
}

func (r *AnalysisRepository) SetArtifactURL(_ context.Context, id domain.AnalysisID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.ArtifactURL = url
	return nil
}

func (r *AnalysisRepository) Paginate(_ context.Context, page, pageSize int, filters map[string]interface{}) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	r.mu.RLock()
	matched := r.sortedLocked(filters)
	r.mu.RUnlock()

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return domain.PaginatedResult{
		Data:       matched[start:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// sortedLocked returns cloned matches newest first. Caller holds the lock.
func (r *AnalysisRepository) sortedLocked(filters map[string]interface{}) []*domain.Analysis {
	out := make([]*domain.Analysis, 0, len(r.items))
	for _, a := range r.items {
		if !matchesFilters(a, filters) {
			continue
		}
		out = append(out, cloneAnalysis(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func matchesFilters(a *domain.Analysis, filters map[string]interface{}) bool {
	for key, value := range filters {
		switch key {
		case "status":
			s, _ := value.(string)
			if string(a.Status) != s {
				return false
			}
		case "startup":
			s, _ := value.(string)
			if !strings.Contains(strings.ToLower(a.StartupName), strings.ToLower(s)) {
				return false
			}
		}
	}
	return true
}

// cloneAnalysis deep-copies through JSON, same serialization the SQL repos
// use for the nested reports.
func cloneAnalysis(a *domain.Analysis) *domain.Analysis {
	b, err := json.Marshal(a)
	if err != nil {
		cp := *a
		return &cp
	}
	var out domain.Analysis
	if err := json.Unmarshal(b, &out); err != nil {
		cp := *a
		return &cp
	}
	return &out
}
