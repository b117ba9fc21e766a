package pipeline

import (
	"context"
	"errors"
	"fmt"

	"oslobors-bot/internal/config"
	"oslobors-bot/internal/feed"
	"oslobors-bot/internal/interfaces"
	"oslobors-bot/internal/logger"
	"oslobors-bot/internal/pricefeed"
	"oslobors-bot/internal/runlog"
	"oslobors-bot/internal/sentiment"
	"oslobors-bot/internal/signal"
	"oslobors-bot/internal/snapshot"
	"oslobors-bot/internal/trace"
	"oslobors-bot/internal/types"
)

// Pipeline wires the news collection, snapshot store, scorer and notifier
// into the runnable jobs. One Pipeline serves one process; each job is a
// single logical run with no shared mutable state between runs.
type Pipeline struct {
	cfg       *config.Config
	collector *feed.Collector
	store     interfaces.SnapshotStore
	scorer    interfaces.TextScorer // nil until a signal run needs it
	notifier  interfaces.Notifier
	prices    interfaces.PriceFeed
}

func New(cfg *config.Config, collector *feed.Collector, store interfaces.SnapshotStore,
	scorer interfaces.TextScorer, notifier interfaces.Notifier, prices interfaces.PriceFeed) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		collector: collector,
		store:     store,
		scorer:    scorer,
		notifier:  notifier,
		prices:    prices,
	}
}

// RunFetch collects the news and persists a fresh snapshot.
func (p *Pipeline) RunFetch(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "pipeline.RunFetch")
	defer span.End()

	snap := p.collector.Collect(ctx)
	locator, err := p.store.Write(snap)
	if err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	logger.Info(ctx, "Snapshot written", "locator", locator, "items", snap.Count)
	return nil
}

// RunSignal scores the latest snapshot and sends exactly one notification:
// the summary on success, or the explicit no-data FLAT notice when there
// is no snapshot or no items. A scorer that cannot run is fatal and
// surfaced, not defaulted to FLAT.
func (p *Pipeline) RunSignal(ctx context.Context) (types.AggregateResult, error) {
	ctx, span := trace.StartSpan(ctx, "pipeline.RunSignal")
	defer span.End()

	if p.scorer == nil {
		return types.AggregateResult{}, errors.New("text scorer unavailable")
	}

	snap, err := p.store.ReadLatest()
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		logger.Warn(ctx, "No snapshot available, reporting FLAT")
		return p.reportNoData(ctx)
	}
	if err != nil {
		return types.AggregateResult{}, fmt.Errorf("reading latest snapshot: %w", err)
	}
	if len(snap.Items) == 0 {
		logger.Warn(ctx, "Latest snapshot has no items, reporting FLAT")
		return p.reportNoData(ctx)
	}

	weights := sentiment.Weights{
		Title:       p.cfg.Scoring.TitleWeight,
		Description: p.cfg.Scoring.DescriptionWeight,
	}
	scored := sentiment.NewArticleScorer(p.scorer, weights).ScoreAll(ctx, snap.Items)

	thresholds := signal.Thresholds{
		Bull: p.cfg.Scoring.BullThreshold,
		Bear: p.cfg.Scoring.BearThreshold,
	}
	result := signal.Build(scored, thresholds)

	logger.Signal(ctx, "signal", string(result.Signal), result.OverallScore, "articles", len(scored))

	p.deliver(ctx, signal.FormatSummary(result))

	if err := runlog.Append(runlog.Entry{Job: "signal", Signal: string(result.Signal), Score: result.OverallScore}); err != nil {
		logger.Warn(ctx, "Failed to append run log", "error", err)
	}
	return result, nil
}

// RunMorning computes the overnight price-proxy direction and notifies.
func (p *Pipeline) RunMorning(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "pipeline.RunMorning")
	defer span.End()

	asiaPct, err := pricefeed.FirstAvailable(ctx, p.prices, p.cfg.Price.AsiaProxies)
	if err != nil {
		return fmt.Errorf("asia proxies: %w", err)
	}
	usPct, err := pricefeed.FirstAvailable(ctx, p.prices, p.cfg.Price.USProxies)
	if err != nil {
		return fmt.Errorf("us proxies: %w", err)
	}

	// ClassifyReturns works on fractional returns; the feed reports percent.
	dir, raw := signal.ClassifyReturns(asiaPct/100, usPct/100,
		p.cfg.Price.AsiaWeight, p.cfg.Price.USWeight, p.cfg.Price.Threshold)

	logger.Signal(ctx, "morning", string(dir), raw, "asia_pct", asiaPct, "us_pct", usPct)

	p.deliver(ctx, signal.FormatMorning(asiaPct, usPct, dir, raw))

	if err := runlog.Append(runlog.Entry{Job: "morning", Signal: string(dir), Score: raw}); err != nil {
		logger.Warn(ctx, "Failed to append run log", "error", err)
	}
	return nil
}

func (p *Pipeline) reportNoData(ctx context.Context) (types.AggregateResult, error) {
	result := types.AggregateResult{
		OverallScore: 0.0,
		Signal:       types.SignalFlat,
	}
	p.deliver(ctx, signal.FormatNoData())
	if err := runlog.Append(runlog.Entry{Job: "signal", Signal: string(types.SignalFlat), Score: 0, Note: "no data"}); err != nil {
		logger.Warn(ctx, "Failed to append run log", "error", err)
	}
	return result, nil
}

func (p *Pipeline) deliver(ctx context.Context, message string) {
	status := p.notifier.Notify(ctx, message)
	if status.Err != nil {
		logger.Warn(ctx, "Notification delivery failed", "error", status.Err)
	} else if !status.Delivered {
		logger.Debug(ctx, "Notification skipped, no channel configured")
	}
}
