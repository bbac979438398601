// Command server runs the adwatch HTTP API: directive ingestion,
// applicability evaluation, and the audit trail behind them.
//
// Every external system is optional. Without PostgreSQL the stores are
// in-memory, without Redis extraction results are not cached, without Kafka
// audit events stay in the local store, and without an LLM API key the
// pattern extractors run with no fallback.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adwatch/internal/audit"
	"adwatch/internal/directive"
	directivehandler "adwatch/internal/directive/handler"
	directivemetrics "adwatch/internal/directive/metrics"
	"adwatch/internal/evaluation"
	evaluationhandler "adwatch/internal/evaluation/handler"
	evaluationmetrics "adwatch/internal/evaluation/metrics"
	"adwatch/internal/extraction"
	"adwatch/internal/extraction/cache"
	extractionmetrics "adwatch/internal/extraction/metrics"
	"adwatch/internal/operator"
	operatorhandler "adwatch/internal/operator/handler"
	"adwatch/internal/operator/token"
	"adwatch/internal/platform/config"
	"adwatch/internal/platform/httpserver"
	"adwatch/internal/platform/logger"
	platformmetrics "adwatch/internal/platform/metrics"
	"adwatch/internal/platform/middleware"
	"adwatch/internal/platform/postgres"
	"adwatch/internal/platform/redis"
	id "adwatch/pkg/domain"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: PostgreSQL when configured, in-memory otherwise.
	var (
		directiveStore  directive.Store  = directive.NewInMemoryStore()
		evaluationStore evaluation.Store = evaluation.NewInMemoryStore()
	)
	if cfg.Postgres.URL != "" {
		db, err := postgres.Open(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer db.Close()

		pool, err := postgres.OpenPool(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		directiveStore = directive.NewPostgresStore(db)
		evaluationStore = evaluation.NewPostgresStore(pool)
		log.Info("using postgres stores")
	} else {
		log.Warn("no postgres configured, using in-memory stores")
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	var extractionCache *cache.Cache
	if redisClient != nil {
		defer redisClient.Close()
		extractionCache = cache.New(redisClient.Client, cfg.Extraction.CacheTTL)
		log.Info("extraction cache enabled")
	}

	// Audit: durable store plus an optional Kafka export.
	var publisher audit.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := audit.NewKafkaPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			return err
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("audit events published to kafka", "topic", cfg.Kafka.Topic)
	}
	auditSvc := audit.NewService(audit.NewInMemoryStore(), publisher, log)

	// Operator accounts and token issuance.
	operatorStore := operator.NewInMemoryStore()
	if seeded, err := operator.Seed(ctx, operatorStore, cfg.Auth); err != nil {
		return err
	} else if seeded != nil {
		log.Info("seeded operator account", "client_id", seeded.ClientID)
	}
	tokenSvc := token.NewService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	operatorSvc := operator.NewService(operatorStore, tokenSvc, cfg.Auth.AccessTokenTTL, auditSvc, log)

	// Extraction pipeline: pattern extractors first, LLM as fallback.
	registry := extraction.NewRegistry()
	if err := registry.Register(extraction.NewFAAExtractor()); err != nil {
		return err
	}
	if err := registry.Register(extraction.NewEASAExtractor()); err != nil {
		return err
	}
	if cfg.LLM.APIKey != "" {
		registry.SetFallback(extraction.NewLLMExtractor(extraction.LLMConfig{
			BaseURL:      cfg.LLM.BaseURL,
			APIKey:       cfg.LLM.APIKey,
			Model:        cfg.LLM.Model,
			MaxTextBytes: cfg.LLM.MaxTextBytes,
			Timeout:      cfg.LLM.Timeout,
		}))
		log.Info("llm fallback extractor enabled", "model", cfg.LLM.Model)
	}
	extractionSvc := extraction.NewService(registry, extractionCache, extractionmetrics.New(), log)

	directiveSvc := directive.NewService(extractionSvc, directiveStore, auditSvc, directivemetrics.New(), log)
	evaluationSvc := evaluation.NewService(directiveSvc, evaluationStore, auditSvc, evaluationmetrics.New(), log)

	router := newRouter(cfg, log, operatorSvc, directiveSvc, evaluationSvc, tokenSvc)

	srv := httpserver.New(cfg.Server.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting adwatch", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(
	cfg config.Config,
	log *slog.Logger,
	operatorSvc *operator.Service,
	directiveSvc *directive.Service,
	evaluationSvc *evaluation.Service,
	tokenSvc *token.Service,
) chi.Router {
	httpMetrics := platformmetrics.New()

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(middleware.LatencyMiddleware(httpMetrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(middleware.ExtractVersion(id.APIVersionV1))
		v1.Use(middleware.ContentTypeJSON)

		v1.Group(func(public chi.Router) {
			operatorhandler.New(operatorSvc, log).Register(public)
		})

		v1.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth(tokenSvc, log))
			directivehandler.New(directiveSvc, log).Register(protected)
			evaluationhandler.New(evaluationSvc, log).Register(protected)
		})
	})

	return r
}
