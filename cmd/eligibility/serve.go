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

	"github.com/DanielPopoola/eligibility-gateway/internal/adapters/handler"
	"github.com/DanielPopoola/eligibility-gateway/internal/adapters/handler/middleware"
	"github.com/DanielPopoola/eligibility-gateway/internal/adapters/postgres"
	"github.com/DanielPopoola/eligibility-gateway/internal/api"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/service"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the eligibility HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			if err := cfg.ValidateDatabase(); err != nil {
				return err
			}

			logger.Info("starting eligibility gateway",
				"port", cfg.Server.Port,
				"log_level", cfg.Logger.Level,
				"clearinghouses", len(cfg.Clearinghouses.Endpoints()),
			)

			ctx := context.Background()
			db, err := postgres.Connect(ctx, &cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			payerRepo := postgres.NewPayerRepository(db)
			checkRepo := postgres.NewCheckRepository(db)

			transport, err := newTransport(cfg, logger)
			if err != nil {
				return err
			}

			eligibilityService := service.NewEligibilityService(
				newBuilder(cfg),
				transport,
				newEngine(cfg),
				payerRepo,
				checkRepo,
				logger,
			)

			h := handler.NewEligibilityHandler(eligibilityService, checkRepo, db, logger)

			mux := http.NewServeMux()
			api.RegisterDocsRoutes(mux)
			h.RegisterRoutes(mux)

			validateRequests, err := api.RequestValidator(logger)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr: "0.0.0.0:" + cfg.Server.Port,
				Handler: middleware.Chain(mux,
					middleware.Timeout(cfg.Server.ReadTimeout),
					middleware.Logging(logger),
					middleware.Recovery(logger),
					validateRequests,
				),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}

			serverErr := make(chan error, 1)
			go func() {
				logger.Info("server starting", "addr", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return fmt.Errorf("server error: %w", err)
			case <-quit:
			}

			logger.Info("shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("server forced to shutdown", "error", err)
			}

			logger.Info("server exited")
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "Grace period for in-flight requests")

	return cmd
}
