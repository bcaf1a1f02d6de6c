package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/spookyuser/tarot-game/internal/adapters/cards"
	httpadapter "github.com/spookyuser/tarot-game/internal/adapters/http"
	"github.com/spookyuser/tarot-game/internal/adapters/llm/openrouter"
	"github.com/spookyuser/tarot-game/internal/app"
	"github.com/spookyuser/tarot-game/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	store := cards.NewEmbeddedStore()

	llmClient := openrouter.NewClient(
		&http.Client{Timeout: cfg.LLMTimeout},
		cfg.OpenRouterAPIKey,
		cfg.OpenRouterBaseURL,
		cfg.LLMModel,
		cfg.LLMFallbackModels,
		logger,
	)

	readings := app.NewReadingService(store, llmClient)
	summary := app.NewSummaryService(llmClient)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))
	e.Use(httpadapter.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())

	handler := httpadapter.NewHandler(readings, summary, store, store)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
