package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"SignalDeck/internal/domain/models"
)

type captureRenderer struct {
	mu       sync.Mutex
	signals  [][]models.Signal
	stats    []models.Statistics
	loadings []bool
	errors   []string
}

func (r *captureRenderer) Render(signals []models.Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, signals)
}

func (r *captureRenderer) RenderStatistics(stats models.Statistics) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = append(r.stats, stats)
}

func (r *captureRenderer) SetLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadings = append(r.loadings, loading)
}

func (r *captureRenderer) RenderError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func newTestRefresher(session Session, renderer *captureRenderer, latency time.Duration) *Refresher {
	cfg := testConfig()
	cfg.SimulatedLatency = latency
	p := NewSignalPipeline(session, cfg, nil, WithScheduler(&fakeScheduler{}))
	a := NewStatsAggregator(session, cfg.Table, cfg.ScanLimit, nil)
	return NewRefresher(p, a, renderer, nil, nil)
}

func TestRefreshRendersBothTogether(t *testing.T) {
	renderer := &captureRenderer{}
	r := newTestRefresher(&fakeSession{mode: models.ModeDemo}, renderer, 0)

	if !r.Refresh(context.Background()) {
		t.Fatalf("expected refresh to run")
	}

	if len(renderer.signals) != 1 {
		t.Fatalf("expected 1 render, got %d", len(renderer.signals))
	}
	if len(renderer.stats) != 1 {
		t.Fatalf("expected 1 statistics render, got %d", len(renderer.stats))
	}
	if renderer.stats[0].SystemHealth != models.HealthDemo {
		t.Fatalf("unexpected health %s", renderer.stats[0].SystemHealth)
	}
	if len(renderer.loadings) != 2 || !renderer.loadings[0] || renderer.loadings[1] {
		t.Fatalf("expected loading true then false, got %v", renderer.loadings)
	}
}

func TestRefreshSurfacesStatisticsError(t *testing.T) {
	renderer := &captureRenderer{}
	store := &fakeStore{scanErr: context.DeadlineExceeded}
	r := newTestRefresher(&fakeSession{mode: models.ModeLive, store: store}, renderer, 0)

	if !r.Refresh(context.Background()) {
		t.Fatalf("expected refresh to run")
	}

	// Signals degrade to the demo fallback, statistics to the ERROR
	// placeholder, and the failure is pushed as an error frame.
	if len(renderer.stats) != 1 || renderer.stats[0].SystemHealth != models.HealthError {
		t.Fatalf("expected ERROR statistics, got %+v", renderer.stats)
	}
	if len(renderer.errors) != 1 {
		t.Fatalf("expected 1 error render, got %v", renderer.errors)
	}
}

func TestRefreshNoErrorRenderWhenHealthy(t *testing.T) {
	renderer := &captureRenderer{}
	r := newTestRefresher(&fakeSession{mode: models.ModeDemo}, renderer, 0)

	if !r.Refresh(context.Background()) {
		t.Fatalf("expected refresh to run")
	}
	if len(renderer.errors) != 0 {
		t.Fatalf("demo placeholder must not render an error, got %v", renderer.errors)
	}
}

func TestRefreshDropsWhileInFlight(t *testing.T) {
	renderer := &captureRenderer{}
	r := newTestRefresher(&fakeSession{mode: models.ModeDemo}, renderer, 200*time.Millisecond)

	done := make(chan bool)
	go func() { done <- r.Refresh(context.Background()) }()
	time.Sleep(20 * time.Millisecond)

	if r.Refresh(context.Background()) {
		t.Fatalf("second refresh must be dropped while one is in flight")
	}
	if !<-done {
		t.Fatalf("first refresh should have run")
	}
}
