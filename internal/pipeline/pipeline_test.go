package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"oslobors-bot/internal/config"
	"oslobors-bot/internal/feed"
	"oslobors-bot/internal/sentiment"
	"oslobors-bot/internal/snapshot"
	"oslobors-bot/internal/types"
)

type fakeStore struct {
	snap    types.NewsSnapshot
	readErr error
	written []types.NewsSnapshot
}

func (f *fakeStore) Write(snap types.NewsSnapshot) (string, error) {
	f.written = append(f.written, snap)
	return "oslo_news_test.json", nil
}

func (f *fakeStore) ReadLatest() (types.NewsSnapshot, error) {
	if f.readErr != nil {
		return types.NewsSnapshot{}, f.readErr
	}
	return f.snap, nil
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(ctx context.Context, message string) types.DeliveryStatus {
	r.messages = append(r.messages, message)
	return types.DeliveryStatus{Delivered: true}
}

type fakePrices struct {
	closes map[string][2]float64
}

func (f *fakePrices) LastTwoCloses(ctx context.Context, symbol string) (float64, float64, error) {
	c, ok := f.closes[symbol]
	if !ok {
		return 0, 0, fmt.Errorf("no data for %s", symbol)
	}
	return c[0], c[1], nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("does-not-exist.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func newSignalPipeline(t *testing.T, store *fakeStore, notifier *recordingNotifier) *Pipeline {
	t.Helper()
	t.Setenv("OSLOBOT_LOG_DIR", t.TempDir())
	return New(testConfig(t), nil, store, sentiment.NewLexiconScorer(), notifier, nil)
}

func TestRunSignalBearishSnapshot(t *testing.T) {
	store := &fakeStore{snap: types.NewsSnapshot{
		FetchedAt: time.Now().Unix(),
		Count:     2,
		Items: []types.NewsItem{
			{Source: "e24", Title: "Oslo Børs faller kraftig", Link: "https://e24.no/a/1"},
			{Source: "dn", Title: "Børsen stuper etter oljepristap", Link: "https://dn.no/b/1"},
		},
	}}
	notifier := &recordingNotifier{}
	p := newSignalPipeline(t, store, notifier)

	res, err := p.RunSignal(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Signal != types.SignalBear {
		t.Errorf("Expected BEAR for uniformly negative headlines, got %s", res.Signal)
	}
	if res.OverallScore >= 0 {
		t.Errorf("Expected negative overall score, got %f", res.OverallScore)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("Expected exactly one notification, got %d", len(notifier.messages))
	}
	if !strings.Contains(notifier.messages[0], "BEAR") {
		t.Errorf("Expected BEAR in message, got %q", notifier.messages[0])
	}
}

func TestRunSignalNoSnapshotNotifiesFlatOnce(t *testing.T) {
	store := &fakeStore{readErr: snapshot.ErrNoSnapshot}
	notifier := &recordingNotifier{}
	p := newSignalPipeline(t, store, notifier)

	res, err := p.RunSignal(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Signal != types.SignalFlat || res.OverallScore != 0.0 {
		t.Errorf("Expected FLAT 0.0, got %s %f", res.Signal, res.OverallScore)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("Expected exactly one notification, got %d", len(notifier.messages))
	}
	if !strings.Contains(notifier.messages[0], "No relevant news") {
		t.Errorf("Expected explicit no-data notice, got %q", notifier.messages[0])
	}
}

func TestRunSignalEmptySnapshotNotifiesFlatOnce(t *testing.T) {
	store := &fakeStore{snap: types.NewsSnapshot{FetchedAt: time.Now().Unix()}}
	notifier := &recordingNotifier{}
	p := newSignalPipeline(t, store, notifier)

	res, err := p.RunSignal(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Signal != types.SignalFlat {
		t.Errorf("Expected FLAT, got %s", res.Signal)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("Expected exactly one notification, got %d", len(notifier.messages))
	}
}

func TestRunSignalStoreFailureIsError(t *testing.T) {
	store := &fakeStore{readErr: errors.New("disk on fire")}
	notifier := &recordingNotifier{}
	p := newSignalPipeline(t, store, notifier)

	if _, err := p.RunSignal(context.Background()); err == nil {
		t.Error("Expected store failure to surface")
	}
	if len(notifier.messages) != 0 {
		t.Errorf("Expected no notification on hard failure, got %d", len(notifier.messages))
	}
}

func TestRunSignalWithoutScorerIsError(t *testing.T) {
	p := New(testConfig(t), nil, &fakeStore{}, nil, &recordingNotifier{}, nil)

	if _, err := p.RunSignal(context.Background()); err == nil {
		t.Error("Expected missing scorer to be an error, not a silent FLAT")
	}
}

func TestRunFetchWritesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>t</title>
<item><title>Oslo Børs faller</title><link>https://e24.no/a/1</link></item>
</channel></rss>`)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	fetcher := feed.NewFetcher([]config.Source{{Name: "e24", URL: srv.URL, Type: "rss"}}, 5*time.Second)
	collector := feed.NewCollector(fetcher, feed.NewRelevanceFilter(cfg.Keywords))

	store := &fakeStore{}
	p := New(cfg, collector, store, nil, &recordingNotifier{}, nil)

	if err := p.RunFetch(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(store.written) != 1 {
		t.Fatalf("Expected one snapshot written, got %d", len(store.written))
	}
	if store.written[0].Count != 1 {
		t.Errorf("Expected one relevant item, got %d", store.written[0].Count)
	}
}

func TestRunMorningLong(t *testing.T) {
	t.Setenv("OSLOBOT_LOG_DIR", t.TempDir())
	cfg := testConfig(t)
	notifier := &recordingNotifier{}
	prices := &fakePrices{closes: map[string][2]float64{
		"EWJ": {100.0, 101.0}, // +1.0%
		"SPY": {200.0, 202.0}, // +1.0%
	}}
	p := New(cfg, nil, &fakeStore{}, nil, notifier, prices)

	if err := p.RunMorning(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("Expected one notification, got %d", len(notifier.messages))
	}
	msg := notifier.messages[0]
	if !strings.Contains(msg, "*LONG*") {
		t.Errorf("Expected LONG direction, got %q", msg)
	}
	if !strings.Contains(msg, "1.00%") {
		t.Errorf("Expected percent moves in message, got %q", msg)
	}
}

func TestRunMorningFlatInsideThreshold(t *testing.T) {
	t.Setenv("OSLOBOT_LOG_DIR", t.TempDir())
	cfg := testConfig(t)
	notifier := &recordingNotifier{}
	prices := &fakePrices{closes: map[string][2]float64{
		"EWJ": {100.0, 100.1},  // +0.1%
		"SPY": {200.0, 199.82}, // -0.09%
	}}
	p := New(cfg, nil, &fakeStore{}, nil, notifier, prices)

	if err := p.RunMorning(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(notifier.messages[0], "*FLAT*") {
		t.Errorf("Expected FLAT direction, got %q", notifier.messages[0])
	}
}

func TestRunMorningAllProxiesFailing(t *testing.T) {
	t.Setenv("OSLOBOT_LOG_DIR", t.TempDir())
	p := New(testConfig(t), nil, &fakeStore{}, nil, &recordingNotifier{}, &fakePrices{})

	if err := p.RunMorning(context.Background()); err == nil {
		t.Error("Expected error when no proxy has data")
	}
}

func TestWeightedMorningMath(t *testing.T) {
	// Sanity-check the fraction/percent conversion end to end: +1% on both
	// proxies with equal weights is a raw score of 0.01.
	cfg := testConfig(t)
	asia, us := 1.0, 1.0
	raw := cfg.Price.AsiaWeight*(asia/100) + cfg.Price.USWeight*(us/100)
	if math.Abs(raw-0.01) > 1e-9 {
		t.Errorf("Expected raw 0.01, got %f", raw)
	}
}
