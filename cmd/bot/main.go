package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"oslobors-bot/internal/config"
	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/pipeline"
	"oslobors-bot/internal/trace"
)

func main() {
	job := flag.String("job", "daily", "job to run: fetch, signal, morning, or daily (fetch then signal)")
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*job, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(job, configPath string) error {
	if err := initializeSystem(); err != nil {
		return err
	}

	ctx := context.Background()
	defer func() {
		if err := trace.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "Tracer shutdown failed", "error", err)
		}
	}()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return err
	}

	compressOldLogs(ctx)

	p, err := buildPipeline(ctx, cfg, job)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build pipeline", err)
		return err
	}

	return runJob(ctx, p, job)
}

func runJob(ctx context.Context, p *pipeline.Pipeline, job string) error {
	switch job {
	case "fetch":
		return p.RunFetch(ctx)
	case "signal":
		_, err := p.RunSignal(ctx)
		return err
	case "morning":
		return p.RunMorning(ctx)
	case "daily":
		if err := p.RunFetch(ctx); err != nil {
			return err
		}
		_, err := p.RunSignal(ctx)
		return err
	default:
		return fmt.Errorf("unknown job %q (expected fetch, signal, morning, or daily)", job)
	}
}
