package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/T1mof/review-tracker/internal/config"
	"github.com/T1mof/review-tracker/internal/handler"
	"github.com/T1mof/review-tracker/internal/repository"
	"github.com/T1mof/review-tracker/internal/service"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			slog.Error("Fatal error", "error", err)
			exitCode = ExitRuntimeError
		}
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on start")
}

func serve() error {
	slog.Info("Starting Review Tracker...")

	cfg := config.Load()

	db, err := cfg.ConnectDB()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if !skipMigrations {
		if err := cfg.RunMigrations(db.DB); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	repo := repository.NewRepository(db)
	svc := service.NewReviewerService(repo)
	h := handler.NewHandler(svc, cfg.AdminToken, cfg.RequestTimeout)

	srv := startServer(cfg.Port, h.SetupRouter())

	return waitForShutdown(srv)
}

// startServer запускает HTTP сервер.
func startServer(port string, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server is starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(ExitRuntimeError)
		}
	}()

	return srv
}

// waitForShutdown ожидает сигнал остановки и gracefully завершает сервер.
func waitForShutdown(srv *http.Server) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server exited gracefully")
	return nil
}
