package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{`
CREATE TABLE IF NOT EXISTS competitor_analyses (
  id TEXT PRIMARY KEY,
  startup_name TEXT NOT NULL,
  pitch TEXT NOT NULL,
  time_period TEXT NOT NULL,
  region TEXT NOT NULL,
  industries_json JSONB NOT NULL,
  reports_json JSONB NOT NULL,
  status TEXT NOT NULL,
  competitors_total INT NOT NULL DEFAULT 0,
  avg_sentiment DOUBLE PRECISION NOT NULL DEFAULT 0,
  artifact_url TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL
);`, `
CREATE INDEX IF NOT EXISTS idx_competitor_analyses_created_at
  ON competitor_analyses (created_at);`, `
CREATE TABLE IF NOT EXISTS analysis_errors (
  id BIGSERIAL PRIMARY KEY,
  analysis_id TEXT NOT NULL,
  industry TEXT NOT NULL,
  phase TEXT NOT NULL,
  message TEXT NOT NULL,
  details_json TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
);`, `
CREATE INDEX IF NOT EXISTS idx_analysis_errors_analysis_id
  ON analysis_errors (analysis_id);`}

	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
