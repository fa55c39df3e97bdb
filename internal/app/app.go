package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ticketblock/ticketblock/internal/config"
	pgledger "github.com/ticketblock/ticketblock/internal/ledger/postgres"
	"github.com/ticketblock/ticketblock/internal/metadata"
	"github.com/ticketblock/ticketblock/internal/postgres"
	"github.com/ticketblock/ticketblock/internal/rates"
	"github.com/ticketblock/ticketblock/internal/redis"
	redisrepo "github.com/ticketblock/ticketblock/internal/repository/redis"
	"github.com/ticketblock/ticketblock/internal/service"
	httpgin "github.com/ticketblock/ticketblock/internal/transport/http/gin"
	"github.com/ticketblock/ticketblock/migrations"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	if err := migrations.Apply(context.Background(), pgxPool); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	rdb, err := redis.New(context.Background(), redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	cache := redisrepo.New(rdb)
	pubsub := redisrepo.NewTicketsPubSub(rdb)
	scanLimiter := redisrepo.NewSlidingWindowLimiter(rdb, "rl:scan", 30, 1*time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	// Committed inventory mutations invalidate cached views and notify
	// seat-map subscribers.
	ldgr := pgledger.New(pgxPool, pgledger.WithAfterCommit(func(ctx context.Context, eventID uint64) {
		_ = cache.InvalidateEvent(ctx, eventID)
		_ = pubsub.PublishTicketsChanged(ctx, eventID)
	}))

	pinClient := metadata.NewClient(metadata.Config{
		BaseURL:   cfg.Metadata.BaseURL,
		APIKey:    cfg.Metadata.APIKey,
		APISecret: cfg.Metadata.APISecret,
	})

	rateSvc := rates.New(rates.Config{
		BaseURL:  cfg.Rates.BaseURL,
		Asset:    cfg.Rates.Asset,
		Currency: cfg.Rates.Currency,
	}, cache)

	// Initialize services
	services := service.NewServices(ldgr, pinClient, cache, service.Config{})

	// Initialize Gin router
	router := httpgin.NewRouter(services, rateSvc, idempotencyStore, scanLimiter, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
