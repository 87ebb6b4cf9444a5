package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/georgemunganga/product-service/internal/config"
	"github.com/georgemunganga/product-service/internal/database"
	"github.com/georgemunganga/product-service/internal/logger"
	"github.com/georgemunganga/product-service/internal/modules/health"
	"github.com/georgemunganga/product-service/internal/modules/product"
)

func main() {
	cmd, err := newRootCommand()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid command setup")
	}
	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("product-api exited")
	}
}

func newRootCommand() (*cobra.Command, error) {
	v := viper.New()
	config.SetDefaults(v)

	var envFile string
	cmd := &cobra.Command{
		Use:           "product-api",
		Short:         "HTTP API for the product lifecycle",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnvFile(envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
	flags.String("port", "", "HTTP listen port (APP_PORT)")
	flags.String("log-level", "", "log level: debug, info, warn, error (LOG_LEVEL)")
	flags.String("db-driver", "", "database driver: postgres or pgx (DB_DRIVER)")
	for key, name := range map[string]string{
		"APP_PORT":  "port",
		"LOG_LEVEL": "log-level",
		"DB_DRIVER": "db-driver",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return cmd, nil
}

func run(ctx context.Context, cfg config.Config) error {
	l := logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	l.Info().Str("port", cfg.AppPort).Msg("Application starting")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, database.Options{
		Driver:          cfg.DBDriver,
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(logger.Middleware(l))
	router.Use(middleware.Recoverer)

	health.NewHandler(db).RegisterRoutes(router)

	productRepo := product.NewPostgresRepository(db)
	statusRepo := product.NewStatusPostgresRepository(db)
	productService := product.NewService(productRepo, statusRepo)
	product.NewHandler(productService).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{Addr: ":" + cfg.AppPort, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		l.Info().Msgf("Product API server starting on :%s", cfg.AppPort)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	l.Info().Msg("Application shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return shutdown(shutdownCtx, srv, l)
}

func shutdown(ctx context.Context, srv *http.Server, l zerolog.Logger) error {
	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
