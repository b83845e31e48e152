package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables when they do not exist yet, so a fresh
// database works without running migrations by hand.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const analyses = `
CREATE TABLE IF NOT EXISTS competitor_analyses (
  id VARCHAR(64) PRIMARY KEY,
  startup_name VARCHAR(160) NOT NULL,
  pitch TEXT NOT NULL,
  time_period VARCHAR(32) NOT NULL,
  region VARCHAR(32) NOT NULL,
  industries_json TEXT NOT NULL,
  reports_json LONGTEXT NOT NULL,
  status VARCHAR(16) NOT NULL,
  competitors_total INT NOT NULL DEFAULT 0,
  avg_sentiment DOUBLE NOT NULL DEFAULT 0,
  artifact_url TEXT NOT NULL,
  created_at DATETIME NOT NULL,
  KEY idx_competitor_analyses_created_at (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	const errorsTable = `
CREATE TABLE IF NOT EXISTS analysis_errors (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  analysis_id VARCHAR(64) NOT NULL,
  industry VARCHAR(80) NOT NULL,
  phase VARCHAR(32) NOT NULL,
  message TEXT NOT NULL,
  details_json TEXT NOT NULL,
  created_at DATETIME NOT NULL,
  KEY idx_analysis_errors_analysis_id (analysis_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	for _, q := range []string{analyses, errorsTable} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
