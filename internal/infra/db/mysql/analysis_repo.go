package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
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
VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 industries_json=VALUES(industries_json),
 reports_json=VALUES(reports_json),
 status=VALUES(status),
 competitors_total=VALUES(competitors_total),
 avg_sentiment=VALUES(avg_sentiment),
 artifact_url=VALUES(artifact_url);
`
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
WHERE id=? LIMIT 1;
`
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
ORDER BY created_at DESC LIMIT ?;
`
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
WHERE created_at >= ?;
`
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
SET artifact_url = ?
WHERE id = ?;`
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

	// Add filters to the query
	if filters != nil {
		for key, value := range filters {
			switch key {
			case "status":
				query += " AND status = ?"
				args = append(args, value)
			case "startup":
				// Use LIKE with wildcards - sanitize input to prevent SQL injection
				query += " AND startup_name LIKE ?"
				searchTerm := value.(string)
				// Escape LIKE special characters
				searchTerm = escapeLikePattern(searchTerm)
				args = append(args, "%"+searchTerm+"%")
			}
		}
	}

	query += "\nORDER BY created_at DESC LIMIT ? OFFSET ?"
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

	// Get total count for pagination
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

	if filters != nil {
		for key, value := range filters {
			switch key {
			case "status":
				query += " AND status = ?"
				args = append(args, value)
			case "startup":
				query += " AND startup_name LIKE ?"
				searchTerm := value.(string)
				searchTerm = escapeLikePattern(searchTerm)
				args = append(args, "%"+searchTerm+"%")
			}
		}
	}

	var count int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
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

// escapeLikePattern escapes special characters in LIKE patterns to prevent SQL injection
func escapeLikePattern(s string) string {
	// Escape backslash first, then other LIKE special characters
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
