package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/trendella/storefront/internal/config"
	"github.com/trendella/storefront/internal/event"
	handler "github.com/trendella/storefront/internal/handler/http"
	mongorepo "github.com/trendella/storefront/internal/repository/mongo"
	"github.com/trendella/storefront/internal/service"
	"github.com/trendella/storefront/internal/storage"
	"github.com/trendella/storefront/internal/storage/cloud"
	"github.com/trendella/storefront/internal/storage/memory"
	"github.com/trendella/storefront/pkg/database"
	"github.com/trendella/storefront/pkg/health"
	"github.com/trendella/storefront/pkg/httpclient"
	pkgkafka "github.com/trendella/storefront/pkg/kafka"
	"github.com/trendella/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	db              *mongodriver.Database
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing first so every later component picks up the global provider.
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// MongoDB.
	db, err := database.ConnectMongo(ctx, database.DefaultMongoConfig(cfg.MongoURI, cfg.MongoDB))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	logger.Info("connected to MongoDB", slog.String("database", cfg.MongoDB))

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Repositories.
	users := mongorepo.NewUserRepository(db)
	products := mongorepo.NewProductRepository(db)
	reviews := mongorepo.NewReviewRepository(db)

	if err := reviews.CreateIndexes(ctx); err != nil {
		return nil, fmt.Errorf("create review indexes: %w", err)
	}

	// Blob storage backend.
	blobs, err := newStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Services.
	eventProducer := event.NewProducer(producer, logger)
	cartService := service.NewCartService(users, eventProducer, logger)
	catalogService := service.NewCatalogService(products, blobs, eventProducer, logger)
	reviewService := service.NewReviewService(reviews, products, users, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("mongodb", func(ctx context.Context) error {
		return database.PingMongo(ctx, db)
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(cartService, catalogService, reviewService, cfg.MaxImageBytes, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// newStorage builds the configured blob storage backend.
func newStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		return memory.New("memory://storefront"), nil
	case config.StorageBackendCloud:
		client := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("media-upload"),
			logger,
		)
		return cloud.New(cfg.StorageUploadURL, client, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := database.DisconnectMongo(shutdownCtx, a.db); err != nil {
		a.logger.Error("mongodb disconnect error", slog.String("error", err.Error()))
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
