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

	"newssummarizer/internal/article"
	"newssummarizer/internal/bot"
	"newssummarizer/internal/config"
	"newssummarizer/internal/news"
	"newssummarizer/internal/summarizer"
	"newssummarizer/internal/web"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("Failed to load config",
			"error", err)

		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := initSummarizer(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize summarizer",
			"error", err,
			"model", cfg.LLMModel,
			"baseURL", cfg.LLMBaseURL)

		return
	}

	fetcher := article.NewFetcher(cfg.FetchTimeout, cfg.FetchMaxBodyBytes, log)
	service := news.NewService(fetcher, s, log)

	webServer, err := web.NewServer(service, cfg.LLMModel, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize web server",
			"error", err)

		return
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           webServer.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "HTTP server failed",
				"error", err,
				"addr", cfg.Addr)
			cancel()
		}
	}()
	log.InfoContext(ctx, "HTTP server is started",
		"addr", cfg.Addr,
		"fetchTimeout", cfg.FetchTimeout.String())

	botInst := initBot(ctx, cfg, service, log)
	if botInst != nil {
		go botInst.Start(ctx)
		log.InfoContext(ctx, "Bot is started")
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
		log.InfoContext(ctx, "Context is done",
			"error", ctx.Err())
	}
	cancel()

	log.InfoContext(context.Background(), "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "Failed to shut down HTTP server",
			"error", err)
	}

	if botInst != nil {
		botInst.Stop()
		log.InfoContext(shutdownCtx, "Bot is stopped")
	}
}

func initSummarizer(ctx context.Context, cfg config.Config, log *slog.Logger) (summarizer.Summarizer, error) {
	if cfg.LLMAPIKey == "" {
		log.WarnContext(ctx, "GOOGLE_API_KEY is missing so every summary request will fail",
			"envVar", "GOOGLE_API_KEY")
	}

	s, err := summarizer.NewOpenAISummarizer(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "Summarizer is initialized",
		"model", cfg.LLMModel,
		"baseURL", cfg.LLMBaseURL,
		"temperature", summarizer.Temperature)

	return s, nil
}

func initBot(ctx context.Context, cfg config.Config, service *news.Service, log *slog.Logger) *bot.Bot {
	if cfg.TelegramToken == "" {
		log.InfoContext(ctx, "TELEGRAM_TOKEN is missing so the bot is disabled",
			"envVar", "TELEGRAM_TOKEN")

		return nil
	}

	b, err := bot.New(cfg.TelegramToken, service, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize bot so it is disabled",
			"error", err)

		return nil
	}

	return b
}
