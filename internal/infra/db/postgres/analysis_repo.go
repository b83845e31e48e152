package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save insert/update Analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO competitor_analyses
(id, startup_name, pitch, time_period, region,
 industries_json, reports_json, status,
 competitors_total, avg_sentiment, artifact_url, created_at)
VALUES ($1,$2,$3,$4,$5,
        $6,$7,$8,
        $9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
 industries_json = EXCLUDED.industries_json,
 reports_json = EXCLUDED.reports_json,
 status = EXCLUDED.status,
 competitors_total = EXCLUDED.competitors_total,
 avg_sentiment = EXCLUDED.avg_sentiment,
 artifact_url = EXCLUDED.artifact_url;`

	industriesJSON, err := json.Marshal(a.Industries)
	if err != nil {
		return fmt.Errorf("marshaling industries: %w", err)
	}
	reportsJSON, err := json.Marshal(a.Reports)
	if err != nil {
		return fmt.Errorf("marshaling reports: %w", err)
	}

	name := stringOrDash(a.StartupName)
	status := stringOrDash(string(a.Status))
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err = r.db.ExecContext(ctx, q,
		a.ID, name, a.Pitch, a.TimePeriod, a.Region,
		industriesJSON, reportsJSON, status,
		a.CompetitorsTotal(), a.AvgSentiment(), a.ArtifactURL, created,
	)
	return err
}

// Get by ID
func (r *AnalysisRepository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, startup_name, pitch, time_period, region,
       industries_json, reports_json, status, artifact_url, created_at
FROM competitor_analyses
WHERE id=$1
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, id)

	var a domain.Analysis
	var industriesJSON, reportsJSON []byte
	if err := row.Scan(
		&a.ID, &a.StartupName, &a.Pitch, &a.TimePeriod, &a.Region,
		&industriesJSON, &reportsJSON, &a.Status, &a.ArtifactURL, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := decodeAnalysisJSON(&a, industriesJSON, reportsJSON); err != nil {
		return nil, err
	}
	return &a, nil
}

// Latest analyses, newest first
func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, startup_name, pitch, time_period, region,
       industries_json, reports_json, status, artifact_url, created_at
FROM competitor_analyses
ORDER BY created_at DESC
LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		var industriesJSON, reportsJSON []byte
		if err := rows.Scan(
			&a.ID, &a.StartupName, &a.Pitch, &a.TimePeriod, &a.Region,
			&industriesJSON, &reportsJSON, &a.Status, &a.ArtifactURL, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := decodeAnalysisJSON(&a, industriesJSON, reportsJSON); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Summary counts analysis results since N days
func (r *AnalysisRepository) Summary(ctx context.Context, sinceDays int) (int, int, float64, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays)

	const q = `
SELECT COUNT(*) AS total_analyses,
       COALESCE(SUM(competitors_total),0) AS competitors,
       COALESCE(AVG(avg_sentiment),0)     AS avg_sentiment
FROM competitor_analyses
WHERE created_at >= $1;`
	var analyses, competitors int
	var avgSentiment float64
	if err := r.db.QueryRowContext(ctx, q, cut).Scan(&analyses, &competitors, &avgSentiment); err != nil {
		return 0, 0, 0, err
	}
	return analyses, competitors, avgSentiment, nil
}

// SetArtifactURL update hanya kolom artifact_url
func (r *AnalysisRepository) SetArtifactURL(ctx context.Context, id domain.AnalysisID, url string) error {
	const q = `
UPDATE competitor_analyses
SET artifact_url = $1
WHERE id = $2;`
	_, err := r.db.ExecContext(ctx, q, url, id)
	return err
}

// Paginate with offset + limit (classic pagination)
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int, filters map[string]interface{}) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `
SELECT id, startup_name, pitch, time_period, region,
       industries_json, reports_json, status, artifact_url, created_at
FROM competitor_analyses
WHERE 1=1`

	args := []interface{}{}
	query, args = appendFilters(query, args, filters)

	query += fmt.Sprintf("\nORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		var industriesJSON, reportsJSON []byte
		if err := rows.Scan(
			&a.ID, &a.StartupName, &a.Pitch, &a.TimePeriod, &a.Region,
			&industriesJSON, &reportsJSON, &a.Status, &a.ArtifactURL, &a.CreatedAt,
		); err != nil {
			return domain.PaginatedResult{}, fmt.Errorf("scanning row: %w", err)
		}
		if err := decodeAnalysisJSON(&a, industriesJSON, reportsJSON); err != nil {
			return domain.PaginatedResult{}, err
		}
		analyses = append(analyses, &a)
	}
	if err = rows.Err(); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("iterating rows: %w", err)
	}

	total, err := r.Count(ctx, filters)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}

	return domain.PaginatedResult{
		Data:       analyses,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Count returns the total number of records matching the given filters
func (r *AnalysisRepository) Count(ctx context.Context, filters map[string]interface{}) (int64, error) {
	query := "SELECT COUNT(*) FROM competitor_analyses WHERE 1=1"
	args := []interface{}{}
	query, args = appendFilters(query, args, filters)

	var count int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// appendFilters adds the supported filter clauses with positional
// placeholders numbered after the existing args.
func appendFilters(query string, args []interface{}, filters map[string]interface{}) (string, []interface{}) {
	if filters == nil {
		return query, args
	}
	for key, value := range filters {
		switch key {
		case "status":
			query += fmt.Sprintf(" AND status = $%d", len(args)+1)
			args = append(args, value)
		case "startup":
			query += fmt.Sprintf(" AND startup_name ILIKE $%d", len(args)+1)
			searchTerm := escapeLikePattern(value.(string))
			args = append(args, "%"+searchTerm+"%")
		}
	}
	return query, args
}

func decodeAnalysisJSON(a *domain.Analysis, industriesJSON, reportsJSON []byte) error {
	if len(industriesJSON) > 0 {
		if err := json.Unmarshal(industriesJSON, &a.Industries); err != nil {
			return fmt.Errorf("unmarshaling industries: %w", err)
		}
	}
	if len(reportsJSON) > 0 {
		if err := json.Unmarshal(reportsJSON, &a.Reports); err != nil {
			return fmt.Errorf("unmarshaling reports: %w", err)
		}
	}
	return nil
}
