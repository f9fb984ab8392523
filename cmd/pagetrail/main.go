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
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/config"
	dbRedis "github.com/pagetrail/pagetrail/internal/db/redis"
	logpkg "github.com/pagetrail/pagetrail/internal/logger"
	"github.com/pagetrail/pagetrail/internal/metrics"
	"github.com/pagetrail/pagetrail/internal/repository/embcache"
	indexrepo "github.com/pagetrail/pagetrail/internal/repository/index"
	memoryrepo "github.com/pagetrail/pagetrail/internal/repository/memory"
	pagerepo "github.com/pagetrail/pagetrail/internal/repository/page"
	chiTransport "github.com/pagetrail/pagetrail/internal/transport/chi"
	openaiT "github.com/pagetrail/pagetrail/internal/transport/openai"
	decisionuc "github.com/pagetrail/pagetrail/internal/usecase/decision"
	embeddinguc "github.com/pagetrail/pagetrail/internal/usecase/embedding"
	healthuc "github.com/pagetrail/pagetrail/internal/usecase/health"
	ingestuc "github.com/pagetrail/pagetrail/internal/usecase/ingest"
	usermem "github.com/pagetrail/pagetrail/internal/usecase/memory"
	orchestratoruc "github.com/pagetrail/pagetrail/internal/usecase/orchestrator"
	searchuc "github.com/pagetrail/pagetrail/internal/usecase/search"
	verifyuc "github.com/pagetrail/pagetrail/internal/usecase/verify"
	"github.com/pagetrail/pagetrail/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting pagetrail API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	// Build embedder chain — composition root
	apiEmbedder := openaiT.NewEmbedder(&openaiT.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		User:       cfg.Embedding.User,
		Logger:     logger,
	})
	cached := embcache.New(apiEmbedder, store, metrics.EmbeddingCacheTotal, logger)
	embedder := embeddinguc.NewInstrumentedEmbedder(cached, "openai", cfg.Embedding.Model, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Create repositories (domain-native, no adapters)
	indexRepo := indexrepo.New(store).WithHNSW(indexrepo.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})
	pageRepo := pagerepo.New(store)
	memStore := memoryrepo.New(store)

	// Strategy planning and answer verification share one reasoning
	// provider. Pass nil interface (not typed nil pointer!) when the
	// provider is not configured — both services fall back gracefully.
	var decider decisionuc.Provider
	var verifier verifyuc.Verifier
	if cfg.Reasoning.APIKey != "" {
		reasoner := openaiT.NewReasoner(&openaiT.ReasonerConfig{
			APIKey:  cfg.Reasoning.APIKey,
			BaseURL: cfg.Reasoning.BaseURL,
			Model:   cfg.Reasoning.Model,
			Logger:  logger,
		})
		decider = reasoner
		verifier = reasoner
		logger.Info("Reasoning provider enabled", zap.String("model", cfg.Reasoning.Model))
	} else {
		logger.Info("Reasoning provider disabled, using fallback strategies")
	}

	// Create use case services
	memorySvc := usermem.New(memStore, logger)
	engine := searchuc.New(indexRepo, pageRepo, embedder, logger)
	decisionSvc := decisionuc.New(decider, logger)
	verifySvc := verifyuc.New(verifier, logger)
	orchestratorSvc := orchestratoruc.New(decisionSvc, engine, verifySvc, memorySvc, indexRepo, logger)
	ingestSvc := ingestuc.New(embedder, pageRepo, indexRepo, logger)

	// Health service checks the raw provider, bypassing cache and metrics.
	healthSvc := healthuc.New(store, apiEmbedder, indexRepo)

	// Create chi server
	server := chiTransport.NewServer(
		orchestratorSvc, ingestSvc, embedder, healthSvc,
		cfg.Embedding.Model, cfg.Embedding.Dimensions, logger,
	)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.RequestLogger(logger))
	r.Use(chiTransport.Recoverer)
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
