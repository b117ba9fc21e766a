package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"oslobors-bot/internal/config"
	"oslobors-bot/internal/feed"
	"oslobors-bot/internal/interfaces"
	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/notify"
	"oslobors-bot/internal/pipeline"
	"oslobors-bot/internal/pricefeed"
	"oslobors-bot/internal/runlog"
	"oslobors-bot/internal/sentiment"
	"oslobors-bot/internal/sentiment/scorerobs"
	"oslobors-bot/internal/snapshot"
	"oslobors-bot/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// compressOldLogs compresses old run log files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("OSLOBOT_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := runlog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeScorer returns the configured text scorer with observability.
// Only the signal job needs one; an unusable HF configuration is an error
// rather than a silent FLAT.
func initializeScorer(ctx context.Context, cfg *config.Config) (interfaces.TextScorer, error) {
	switch cfg.Scorer.Provider {
	case "HF":
		s, err := sentiment.NewHFScorer(cfg.Scorer.Endpoint, cfg.Scorer.Model, os.Getenv(cfg.Scorer.APIKeyEnv))
		if err != nil {
			return nil, fmt.Errorf("huggingface scorer: %w", err)
		}
		logger.Info(ctx, "Using Hugging Face inference scorer", "model", cfg.Scorer.Model)
		return scorerobs.Wrap(s), nil
	case "LEXICON":
		logger.Info(ctx, "Using offline lexicon scorer")
		return scorerobs.Wrap(sentiment.NewLexiconScorer()), nil
	default:
		return nil, fmt.Errorf("unknown scorer provider %q", cfg.Scorer.Provider)
	}
}

// initializeNotifier returns the Telegram notifier when the channel is
// configured, the logging no-op otherwise
func initializeNotifier(ctx context.Context, cfg *config.Config) interfaces.Notifier {
	if cfg.Notify.Provider != "TELEGRAM" {
		return notify.NewNoopNotifier()
	}
	token := os.Getenv("TELEGRAM_TOKEN")
	chatRaw := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatRaw == "" {
		logger.Warn(ctx, "TELEGRAM_TOKEN or TELEGRAM_CHAT_ID not set - notifications go to the log only")
		return notify.NewNoopNotifier()
	}
	chatID, err := strconv.ParseInt(chatRaw, 10, 64)
	if err != nil {
		logger.Warn(ctx, "Invalid TELEGRAM_CHAT_ID - notifications go to the log only", "error", err)
		return notify.NewNoopNotifier()
	}
	tg, err := notify.NewTelegramNotifier(token, chatID)
	if err != nil {
		logger.Warn(ctx, "Telegram setup failed - notifications go to the log only", "error", err)
		return notify.NewNoopNotifier()
	}
	return tg
}

// buildPipeline wires the collector, store, scorer and notifier for the
// requested job. The scorer is only constructed when needed so fetch and
// morning runs work without sentiment credentials.
func buildPipeline(ctx context.Context, cfg *config.Config, job string) (*pipeline.Pipeline, error) {
	store, err := snapshot.NewStore(cfg.Snapshot.Dir, cfg.Snapshot.Timezone)
	if err != nil {
		return nil, fmt.Errorf("snapshot store: %w", err)
	}

	fetcher := feed.NewFetcher(cfg.Sources, cfg.FetchTimeout())
	filter := feed.NewRelevanceFilter(cfg.Keywords)
	collector := feed.NewCollector(fetcher, filter)

	var scorer interfaces.TextScorer
	if job == "signal" || job == "daily" {
		scorer, err = initializeScorer(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	notifier := initializeNotifier(ctx, cfg)
	prices := pricefeed.NewYahooFeed()

	return pipeline.New(cfg, collector, store, scorer, notifier, prices), nil
}
