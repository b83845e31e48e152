package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/rivalscan/internal/application"
	appanalyses "github.com/bryanwahyu/rivalscan/internal/application/analyses"
	"github.com/bryanwahyu/rivalscan/internal/config"
	domai "github.com/bryanwahyu/rivalscan/internal/domain/ai"
	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysis"
	domerr "github.com/bryanwahyu/rivalscan/internal/domain/analysiserrors"
	"github.com/bryanwahyu/rivalscan/internal/domain/classify"
	domsearch "github.com/bryanwahyu/rivalscan/internal/domain/search"
	anthropicclient "github.com/bryanwahyu/rivalscan/internal/infra/ai/anthropic"
	openaiclient "github.com/bryanwahyu/rivalscan/internal/infra/ai/openai"
	"github.com/bryanwahyu/rivalscan/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/rivalscan/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/rivalscan/internal/infra/db/postgres"
	"github.com/bryanwahyu/rivalscan/internal/infra/httpserver"
	infrasearch "github.com/bryanwahyu/rivalscan/internal/infra/search"
	minioStore "github.com/bryanwahyu/rivalscan/internal/infra/storage"
	"github.com/bryanwahyu/rivalscan/internal/logger"
	"github.com/bryanwahyu/rivalscan/internal/middleware"
)

func main() {
	// .env untuk development lokal, diabaikan kalau tidak ada
	_ = godotenv.Load()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		logrus.Fatalf("config load error: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		logrus.Fatalf("logger init error: %v", err)
	}

	ctx := context.Background()

	// pilih repo per driver, tanpa driver jalan full in-memory
	var (
		repo     domain.Repository
		errRepo  domerr.Repository
		checkers = map[string]middleware.HealthChecker{}
	)
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			logrus.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		if err := mysqlp.EnsureSchema(ctx, db); err != nil {
			logrus.Fatalf("mysql schema error: %v", err)
		}
		repo = mysqlp.NewAnalysisRepository(db)
		errRepo = mysqlp.NewAnalysisErrorRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			logrus.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		if err := postgresp.EnsureSchema(ctx, db); err != nil {
			logrus.Fatalf("postgres schema error: %v", err)
		}
		repo = postgresp.NewAnalysisRepository(db)
		errRepo = postgresp.NewAnalysisErrorRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "":
		logrus.Warn("no database driver configured, using in-memory repositories")
		repo = memory.NewAnalysisRepository()
		errRepo = memory.NewAnalysisErrorRepository()
	default:
		logrus.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}

	// init minio, opsional
	var store domain.ArtifactStore
	if cfg.Minio.Endpoint != "" {
		s, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logrus.Fatalf("minio init error: %v", err)
		}
		store = s
	}

	// init search: provider -> metrics -> cache
	base, err := infrasearch.New(cfg.Search.Provider, infrasearch.Options{
		BraveAPIKey: cfg.Search.BraveAPIKey,
		Timeout:     cfg.SearchTimeout(),
	})
	if err != nil {
		logrus.Fatalf("search init error: %v", err)
	}
	var searcher domsearch.Searcher = infrasearch.WithCache(infrasearch.WithMetrics(base), cfg.SearchCacheTTL())

	// server tetap jalan tanpa kredensial, halaman depan menampilkan peringatan
	var warnings []string
	if (cfg.Search.Provider == "" || cfg.Search.Provider == "brave") && cfg.Search.BraveAPIKey == "" {
		logrus.Warn("brave search selected without an API key, searches will fail")
		warnings = append(warnings, httpserver.CredentialBanner)
	}

	// klien AI opsional, dipakai classifier llm dan mode llm
	var aiClient domai.Client
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.OpenAIKey != "" {
			aiClient = openaiclient.NewClient(cfg.AI.OpenAIKey, cfg.AI.Model)
		}
	case "anthropic":
		if cfg.AI.AnthropicKey != "" {
			aiClient = anthropicclient.NewClient(cfg.AI.AnthropicKey, cfg.AI.Model)
		}
	default:
		logrus.Fatalf("unknown ai provider: %s", cfg.AI.Provider)
	}

	var classifier classify.Classifier = classify.KeywordClassifier{}
	if cfg.Analysis.Classifier == "llm" {
		if aiClient != nil {
			classifier = classify.LLMClassifier{AI: aiClient}
		} else {
			logrus.Warn("llm classifier requested without an AI key, using keyword classifier")
		}
	}

	mode := appanalyses.ModeRules
	if cfg.Analysis.Competitors == "llm" {
		if aiClient != nil {
			mode = appanalyses.ModeLLM
		} else {
			logrus.Warn("llm extraction requested without an AI key, using rules")
		}
	}

	// init service
	svc := &appanalyses.Service{
		Repo:       repo,
		Errors:     errRepo,
		Classifier: classifier,
		Searcher:   searcher,
		AI:         aiClient,
		Artifacts:  store,
		Clock:      application.SystemClock{},
		Mode:       mode,
		Sentiment:  cfg.SentimentEnabled(),
		MaxResults: cfg.Search.MaxResults,
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	mux.Mount("/", httpserver.NewRouter(svc, cfg.Auth.APIKeys, checkers, warnings))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logrus.Infof("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logrus.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logrus.Errorf("shutdown error: %v", err)
	}
}
