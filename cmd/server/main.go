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

	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/config"
	"github.com/greencart/internal/db"
	"github.com/greencart/internal/handler"
	"github.com/greencart/internal/logging"
	"github.com/greencart/internal/metrics"
	"github.com/greencart/internal/router"
	"github.com/greencart/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	listenAddr    string
	databasePath  string
	secureCookies bool
}

func rootCommand() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:          "greencart",
		Short:        "GreenCart storefront and consumption diary",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&f.databasePath, "db", "", "sqlite database path (overrides DATABASE_PATH)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(loadConfig(f), f.secureCookies)
		},
	}
	serveCmd.Flags().StringVar(&f.listenAddr, "listen", "", "listen address (overrides LISTEN_ADDR/PORT)")
	serveCmd.Flags().BoolVar(&f.secureCookies, "secure-cookies", false, "mark the session cookie Secure")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled strain catalog and the demo account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(loadConfig(f))
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(f)
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if err := openDatabase(cfg, logger); err != nil {
				return err
			}
			logger.Info("schema migrated", zap.String("driver", cfg.DatabaseDriver))
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, seedCmd, migrateCmd)
	rootCmd.RunE = serveCmd.RunE
	return rootCmd
}

func loadConfig(f flags) config.AppConfig {
	cfg := config.Load()
	if f.listenAddr != "" {
		cfg.ListenAddr = f.listenAddr
	}
	if f.databasePath != "" {
		cfg.DatabasePath = f.databasePath
	}
	return cfg
}

func openDatabase(cfg config.AppConfig, logger *zap.Logger) error {
	dsn := cfg.DatabasePath
	if cfg.DatabaseDriver == db.DriverPostgres {
		dsn = cfg.DatabaseURL
	}
	if err := db.Init(cfg.DatabaseDriver, dsn, logging.NewGormLogger(logger, 200*time.Millisecond)); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	return nil
}

func serve(cfg config.AppConfig, secureCookies bool) error {
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if err := openDatabase(cfg, logger); err != nil {
		return err
	}

	m, err := metrics.New()
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}

	api := handler.NewAPI(db.DB, handler.Options{
		MinimumAge:         cfg.MinimumAge,
		CatalogCacheTTL:    cfg.CatalogCacheTTL,
		RecommendationSeed: cfg.RecommendationSeed,
		Metrics:            m,
		Logger:             logger,
	})

	if cfg.SeedUserEmail != "" {
		if _, err := seed.Apply(db.DB, api.Catalog(), seed.Options{
			UserEmail:    cfg.SeedUserEmail,
			UserPassword: cfg.SeedUserPassword,
		}, logger); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: router.SetupRouter(api, router.Options{
			SessionSecret: cfg.SessionSecret,
			SecureCookies: secureCookies,
			Metrics:       m,
			Logger:        logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr), zap.String("driver", cfg.DatabaseDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runSeed(cfg config.AppConfig) error {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if err := openDatabase(cfg, logger); err != nil {
		return err
	}

	catalog := handler.NewAPI(db.DB, handler.Options{Logger: logger}).Catalog()
	count, err := seed.Apply(db.DB, catalog, seed.Options{
		UserEmail:    cfg.SeedUserEmail,
		UserPassword: cfg.SeedUserPassword,
	}, logger)
	if err != nil {
		return err
	}
	fmt.Printf("seeded %d strains\n", count)
	return nil
}
