package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql, postgres, kosongkan untuk memory
		URL      string `yaml:"url"`    // DSN penuh, mengalahkan field per-bagian
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"` // postgres saja
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Search struct {
		Provider        string `yaml:"provider"` // brave, duckduckgo, googlenews
		BraveAPIKey     string `yaml:"braveApiKey"`
		MaxResults      int    `yaml:"maxResults"`
		TimeoutSeconds  int    `yaml:"timeoutSeconds"`
		CacheTTLMinutes int    `yaml:"cacheTtlMinutes"`
	} `yaml:"search"`

	AI struct {
		Provider     string `yaml:"provider"` // openai, anthropic
		OpenAIKey    string `yaml:"openaiApiKey"`
		AnthropicKey string `yaml:"anthropicApiKey"`
		Model        string `yaml:"model"` // kosong = default model provider
	} `yaml:"ai"`

	Analysis struct {
		Classifier  string `yaml:"classifier"`  // keyword, llm
		Competitors string `yaml:"competitors"` // rules, llm
		Sentiment   *bool  `yaml:"sentiment"`   // nil berarti aktif
	} `yaml:"analysis"`

	Auth struct {
		APIKeys []string `yaml:"apiKeys"`
	} `yaml:"auth"`

	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rateLimit"`

	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Load baca file config.yaml. File yang tidak ada bukan error: jalan dengan
// default plus env, cocok untuk demo pakai repo memory.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Search.Provider == "" {
		c.Search.Provider = "brave"
	}
	if c.Search.MaxResults == 0 {
		c.Search.MaxResults = 20
	}
	if c.Search.TimeoutSeconds == 0 {
		c.Search.TimeoutSeconds = 15
	}
	if c.Search.CacheTTLMinutes == 0 {
		c.Search.CacheTTLMinutes = 60
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "openai"
	}
	if c.Analysis.Classifier == "" {
		c.Analysis.Classifier = "keyword"
	}
	if c.Analysis.Competitors == "" {
		c.Analysis.Competitors = "rules"
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Secrets boleh lewat env supaya tidak perlu ditulis di yaml.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("BRAVE_API_KEY"); v != "" {
		c.Search.BraveAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.AI.OpenAIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.AI.AnthropicKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		c.Minio.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		c.Minio.SecretKey = v
	}
	if v := os.Getenv("API_KEYS"); v != "" {
		keys := strings.Split(v, ",")
		c.Auth.APIKeys = c.Auth.APIKeys[:0]
		for _, k := range keys {
			if k = strings.TrimSpace(k); k != "" {
				c.Auth.APIKeys = append(c.Auth.APIKeys, k)
			}
		}
	}
}

// SentimentEnabled: sentiment scoring aktif kecuali dimatikan eksplisit.
func (c *Config) SentimentEnabled() bool {
	return c.Analysis.Sentiment == nil || *c.Analysis.Sentiment
}

func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

func (c *Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.Search.CacheTTLMinutes) * time.Minute
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	port := c.Database.Port
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	port := c.Database.Port
	if port == 0 {
		port = 5432
	}
	ssl := c.Database.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		port,
		c.Database.Name,
		ssl,
	)
}
