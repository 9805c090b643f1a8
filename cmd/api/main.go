package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wolfman30/doorquote/cmd/mainconfig"
	appconfig "github.com/wolfman30/doorquote/internal/config"
	"github.com/wolfman30/doorquote/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting doorquote API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	handler, err := mainconfig.NewHTTPHandler(context.Background(), cfg, logger, nil)
	if err != nil {
		logger.Error("failed to initialize lead pipeline", "error", err)
		os.Exit(1)
	}

	srv := newServer(cfg, handler)

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}

func newServer(cfg *appconfig.Config, handler http.Handler) *http.Server {
	// The write deadline must outlast the router timeout so the timeout response reaches the client.
	writeTimeout := cfg.HTTPWriteTimeout
	if writeTimeout > 0 {
		writeTimeout += 5 * time.Second
	}
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
}
