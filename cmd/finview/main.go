package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finview/internal/api"
	"finview/internal/config"
	apphttp "finview/internal/http"
	applog "finview/internal/log"
	"finview/internal/session"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(cfg.LogLevel, applog.ComponentApp)
	applog.SetDefault(logger)

	logger.Info("Starting finview", applog.FieldOperation, applog.OpStartup)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	// Session store keeps the signed-in credential across restarts.
	sessions, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		logger.Error("Failed to open session store", applog.FieldError, err, "path", cfg.SessionDBPath)
		os.Exit(1)
	}
	defer sessions.Close()

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, sessions)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Auth:         api.NewAuthService(client, sessions),
		Categories:   api.NewCategoryService(client),
		Transactions: api.NewTransactionService(client),
		Dashboard:    api.NewDashboardService(client),
		Reports:      api.NewReportService(client),
		Sessions:     sessions,
		Logger:       logger.WithComponent(applog.ComponentHTTP),
	})
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown, "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Listening", "port", cfg.Port, "api_base_url", cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
