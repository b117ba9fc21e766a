package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"oslobors-bot/internal/config"
	"oslobors-bot/internal/feed"
	"oslobors-bot/internal/interfaces"
	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/notify"
	"oslobors-bot/internal/pipeline"
	"oslobors-bot/internal/pricefeed"
	"oslobors-bot/internal/sentiment"
	"oslobors-bot/internal/sentiment/scorerobs"
	"oslobors-bot/internal/snapshot"
	"oslobors-bot/internal/trace"
	"oslobors-bot/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*addr, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(addr, configPath string) error {
	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	ctx := context.Background()
	defer func() { _ = trace.Shutdown(ctx) }()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	p, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}

	router := newRouter(p)
	logger.Info(ctx, "Server listening", "addr", addr)
	return router.Run(addr)
}

// newRouter exposes the jobs over HTTP so a scheduler can trigger runs
// with plain GET requests
func newRouter(p *pipeline.Pipeline) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/run", func(c *gin.Context) {
		job := c.Query("job")
		switch job {
		case "fetch":
			if err := p.RunFetch(c.Request.Context()); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "snapshot written"})
		case "signal":
			res, err := p.RunSignal(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"signal":  string(res.Signal),
				"score":   res.OverallScore,
				"top":     topTitles(res),
				"message": "signal computed",
			})
		case "morning":
			if err := p.RunMorning(c.Request.Context()); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "morning signal sent"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": fmt.Sprintf("unknown job %q", job)})
		}
	})

	return router
}

func topTitles(res types.AggregateResult) []string {
	titles := make([]string, 0, len(res.TopArticles))
	for _, a := range res.TopArticles {
		titles = append(titles, a.Item.Title)
	}
	return titles
}

func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, error) {
	store, err := snapshot.NewStore(cfg.Snapshot.Dir, cfg.Snapshot.Timezone)
	if err != nil {
		return nil, fmt.Errorf("snapshot store: %w", err)
	}

	fetcher := feed.NewFetcher(cfg.Sources, cfg.FetchTimeout())
	filter := feed.NewRelevanceFilter(cfg.Keywords)
	collector := feed.NewCollector(fetcher, filter)

	scorer, err := buildScorer(cfg)
	if err != nil {
		return nil, err
	}

	return pipeline.New(cfg, collector, store, scorer, buildNotifier(ctx, cfg), pricefeed.NewYahooFeed()), nil
}

func buildScorer(cfg *config.Config) (interfaces.TextScorer, error) {
	switch cfg.Scorer.Provider {
	case "HF":
		s, err := sentiment.NewHFScorer(cfg.Scorer.Endpoint, cfg.Scorer.Model, os.Getenv(cfg.Scorer.APIKeyEnv))
		if err != nil {
			return nil, fmt.Errorf("huggingface scorer: %w", err)
		}
		return scorerobs.Wrap(s), nil
	case "LEXICON":
		return scorerobs.Wrap(sentiment.NewLexiconScorer()), nil
	default:
		return nil, fmt.Errorf("unknown scorer provider %q", cfg.Scorer.Provider)
	}
}

func buildNotifier(ctx context.Context, cfg *config.Config) interfaces.Notifier {
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
