package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vijaybala/invoice-tracker/internal/common"
	"github.com/vijaybala/invoice-tracker/internal/export"
	"github.com/vijaybala/invoice-tracker/internal/extract"
	"github.com/vijaybala/invoice-tracker/internal/llm/gemini"
	"github.com/vijaybala/invoice-tracker/internal/pipeline"
	"github.com/vijaybala/invoice-tracker/internal/repository"
	"github.com/vijaybala/invoice-tracker/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	if err := repository.EnsureBootstrapped(ctx, pool, logger); err != nil {
		logger.Error("database bootstrap failed", "error", err)
		os.Exit(1)
	}

	inferrer, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Timeout:     cfg.LLM.Timeout,
		MaxAttempts: cfg.LLM.MaxAttempts,
		Backoff:     cfg.LLM.Backoff,
	}, logger)
	if err != nil {
		logger.Error("gemini client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := inferrer.Close(); cerr != nil {
			logger.Warn("gemini client close", "error", cerr)
		}
	}()

	orch := pipeline.NewOrchestrator(
		logger,
		pipeline.Config{MaxPromptRunes: cfg.Extract.MaxPromptRunes},
		extract.NewPDFExtractor(logger),
		inferrer,
	)

	invoices := repository.NewInvoiceRepository(pool, logger)
	exporter := export.NewService(invoices, logger)
	handlers := server.NewHandlers(logger, cfg.Server, orch, invoices, exporter)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewRouter(handlers, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
