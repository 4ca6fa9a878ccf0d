package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/config"
	"github.com/kailas-cloud/eacsearch/internal/db"
	"github.com/kailas-cloud/eacsearch/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/eacsearch/internal/db/redis"
	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/feature"
	logpkg "github.com/kailas-cloud/eacsearch/internal/logger"
	"github.com/kailas-cloud/eacsearch/internal/metrics"
	categoryrepo "github.com/kailas-cloud/eacsearch/internal/repository/category"
	"github.com/kailas-cloud/eacsearch/internal/repository/embcache"
	historyrepo "github.com/kailas-cloud/eacsearch/internal/repository/history"
	keywordrepo "github.com/kailas-cloud/eacsearch/internal/repository/keyword"
	offerrepo "github.com/kailas-cloud/eacsearch/internal/repository/offer"
	"github.com/kailas-cloud/eacsearch/internal/repository/session"
	venuerepo "github.com/kailas-cloud/eacsearch/internal/repository/venue"
	chiTransport "github.com/kailas-cloud/eacsearch/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/eacsearch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/eacsearch/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/eacsearch/internal/usecase/health"
	locuc "github.com/kailas-cloud/eacsearch/internal/usecase/localisation"
	offersuc "github.com/kailas-cloud/eacsearch/internal/usecase/offers"
	suggestuc "github.com/kailas-cloud/eacsearch/internal/usecase/suggest"
	venueuc "github.com/kailas-cloud/eacsearch/internal/usecase/venue"
	"github.com/kailas-cloud/eacsearch/internal/version"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting eacsearch API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("semantic_fallback", cfg.Embedding.Enabled()),
	)

	var store db.Store
	store, err = dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create index store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Index store not ready", zap.Error(err))
	}
	logger.Info("Connected to index store")

	pool, err := postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Catalog.DSN,
		MaxConns:        cfg.Catalog.MaxConns,
		MaxConnLifetime: time.Hour,
	})
	if err != nil {
		logger.Fatal("Failed to connect to venue catalog", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("Connected to venue catalog")

	// Register metrics explicitly (no init())
	metrics.Register()

	// Pass nil interface (not typed nil pointer!) when the fallback is off.
	var embedder domain.Embedder
	var vector *db.VectorOptions
	if cfg.Embedding.Enabled() {
		embedder = buildEmbedder(cfg.Embedding, store, logger)
		vector = &db.VectorOptions{
			Dim:            cfg.Embedding.Dimensions,
			M:              cfg.Index.HNSWM,
			EFConstruction: cfg.Index.HNSWEFConstruct,
		}
		logger.Info("Embedder created",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", vector.Dim),
		)
	}

	indexes := []*db.IndexDefinition{
		offerrepo.Index(cfg.Index.Offers, vector),
		venuerepo.Index(cfg.Index.Venues),
	}
	for _, def := range indexes {
		created, err := db.EnsureIndex(ctx, store, def)
		if err != nil {
			logger.Fatal("Failed to ensure index", zap.String("index", def.Name), zap.Error(err))
		}
		logger.Info("Index ready", zap.String("index", def.Name), zap.Bool("created", created))
		if created {
			logger.Debug("Index schema", zap.Stringer("schema", def))
		}
	}

	toggles := feature.Toggles{
		FormatsEnabled:       cfg.Features.Formats,
		GeolocationEnabled:   cfg.Features.Geolocation,
		SearchHistoryEnabled: cfg.Features.SearchHistory,
	}
	sessionTTL := time.Duration(cfg.Sessions.TTLMinutes) * time.Minute

	// Repositories
	offerRepo := offerrepo.New(store, cfg.Index.Offers)
	historyRepo := historyrepo.New(store, time.Duration(cfg.History.TTLDays)*24*time.Hour)
	venueMatcher := venuerepo.NewMatcher(store, cfg.Index.Venues, cfg.Index.VenueMatches)
	keywordRepo := keywordrepo.New(store, cfg.Index.Keywords, cfg.Index.KeywordMatches)
	categoryRepo := categoryrepo.New(store, time.Hour)
	catalog := venuerepo.NewCatalog(pool)

	// Use case services
	var offerEmbedder offersuc.Embedder
	if embedder != nil {
		offerEmbedder = embedder
	}
	offersSvc := offersuc.New(offerRepo, offerEmbedder, toggles).
		WithPagination(cfg.Index.DefaultPageSize, cfg.Index.MaxPageSize)

	localisationSvc := locuc.New(
		session.New[*locuc.Session](cfg.Sessions.MaxSessions, sessionTTL, nil),
		toggles,
	)

	aggregator := suggestuc.New(historyRepo, venueMatcher, keywordRepo, categoryRepo, suggestuc.Config{
		HistoryEnabled: toggles.SearchHistoryEnabled,
		Capacity:       cfg.History.Capacity,
		DisplayLimit:   cfg.History.DisplayLimit,
	}, logger)
	suggestSvc := suggestuc.NewService(aggregator,
		session.New(cfg.Sessions.MaxSessions, sessionTTL, suggestuc.Evicted))

	venueSvc := venueuc.New(catalog)

	var embeddingChecker healthuc.EmbeddingChecker
	if embedder != nil {
		embeddingChecker = newEmbeddingHealthChecker(embedder)
	}
	healthSvc := healthuc.New(store, pool, embeddingChecker)

	server := chiTransport.NewServer(offersSvc, localisationSvc, suggestSvc, venueSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", chiTransport.UserIDHeader},
		ExposedHeaders:   []string{"X-Request-ID", "X-Embedding-Tokens"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Instruction
func buildEmbedder(cfg config.EmbeddingConfig, store db.KVStore, logger *zap.Logger) domain.Embedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Timeout:    time.Duration(cfg.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	var embedder domain.Embedder = embcache.New(
		base, store, cfg.Model, time.Duration(cfg.CacheTTLHours)*time.Hour,
		metrics.EmbeddingCacheTotal, logger,
	)

	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, cfg.Provider, cfg.Model, logger)

	// Instruction prefix (outermost, so the cache key includes it)
	if cfg.QueryInstruction != "" {
		return domain.NewInstructionEmbedder(embedder, cfg.QueryInstruction)
	}
	return embedder
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Bool("user", r.Header.Get(chiTransport.UserIDHeader) != ""),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
