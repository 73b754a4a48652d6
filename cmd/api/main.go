package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/kitcart/api/routes"
	"github.com/angelmondragon/kitcart/internal/cart"
	"github.com/angelmondragon/kitcart/internal/catalog"
	"github.com/angelmondragon/kitcart/internal/notifications"
	"github.com/angelmondragon/kitcart/pkg/config"
	"github.com/angelmondragon/kitcart/pkg/db"
	"github.com/angelmondragon/kitcart/pkg/enums"
	"github.com/angelmondragon/kitcart/pkg/logger"
	"github.com/angelmondragon/kitcart/pkg/metrics"
	"github.com/angelmondragon/kitcart/pkg/migrate"
	"github.com/angelmondragon/kitcart/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cartMetrics := metrics.NewCartMetrics(registry)

	storage, closeStorage, err := openStorage(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer closeStorage()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	engine, err := cart.NewEngine(cat.Rules())
	if err != nil {
		return err
	}

	store, err := cart.NewStore(storage, cfg.Storage.Namespace,
		cart.WithStoreLogger(logg),
		cart.WithStoreMetrics(cartMetrics),
	)
	if err != nil {
		return err
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Engine:   engine,
		Store:    store,
		Products: cat,
		Notifier: notifications.NewLogNotifier(logg),
		Metrics:  cartMetrics,
		Logger:   logg,
	})
	if err != nil {
		return fmt.Errorf("create cart service: %w", err)
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, store, cat, cartService, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info(logg.WithFields(gctx, map[string]any{
			"addr":    addr,
			"storage": cfg.Storage.Driver,
			"env":     cfg.App.Env,
		}), "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		logg.Info(shutdownCtx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStorage connects the configured cart storage backend and returns its closer.
func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (cart.Storage, func(), error) {
	noop := func() {}

	switch driver := cfg.Storage.DriverKind(); driver {
	case enums.StorageDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap redis: %w", err)
		}
		closer := func() {
			if err := client.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}
		return cart.NewRedisStorage(client, cfg.Storage.KeyTTL), closer, nil

	case enums.StorageDriverPostgres, enums.StorageDriverSQLite:
		client, err := db.New(ctx, cfg.DB, driver, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap database: %w", err)
		}
		closer := func() {
			if err := client.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			closer()
			return nil, noop, fmt.Errorf("run migrations: %w", err)
		}
		return cart.NewSnapshotStorage(client), closer, nil

	default:
		logg.Warn(ctx, "using in-memory cart storage; carts are lost on restart")
		return cart.NewMemoryStorage(), noop, nil
	}
}
