package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "brave", cfg.Search.Provider)
	assert.Equal(t, 20, cfg.Search.MaxResults)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "keyword", cfg.Analysis.Classifier)
	assert.Equal(t, "rules", cfg.Analysis.Competitors)
	assert.True(t, cfg.SentimentEnabled())
	assert.Equal(t, 15*time.Second, cfg.SearchTimeout())
	assert.Equal(t, 60*time.Minute, cfg.SearchCacheTTL())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: 9090
database:
  driver: mysql
  host: db.internal
  user: app
  name: rivalscan
search:
  provider: duckduckgo
analysis:
  sentiment: false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BRAVE_API_KEY", "bsk-123")
	t.Setenv("DB_PASSWORD", "rahasia")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "duckduckgo", cfg.Search.Provider)
	assert.False(t, cfg.SentimentEnabled())
	assert.Equal(t, "bsk-123", cfg.Search.BraveAPIKey)
	assert.Equal(t, "app:rahasia@tcp(db.internal:3306)/rivalscan?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
}

func TestAPIKeysFromEnv(t *testing.T) {
	t.Setenv("API_KEYS", "alpha, beta ,,gamma")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, cfg.Auth.APIKeys)
}

func TestPostgresDSN(t *testing.T) {
	var cfg Config
	cfg.Database.Host = "localhost"
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "rivalscan"

	assert.Equal(t, "postgres://app:pw@localhost:5432/rivalscan?sslmode=disable", cfg.PostgresDSN())

	cfg.Database.URL = "postgres://u:p@db.example.com/other"
	assert.Equal(t, "postgres://u:p@db.example.com/other", cfg.PostgresDSN())
}
