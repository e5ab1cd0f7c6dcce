package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"SignalDeck/internal/domain/models"
	"SignalDeck/internal/domain/repository"
	"SignalDeck/pkg/logger"
)

// Refresher runs one dashboard refresh cycle: signals and statistics are
// fetched as two concurrent tasks, joined, then rendered together. A
// refresh observed while one is in flight is dropped, not queued.
type Refresher struct {
	pipeline *SignalPipeline
	stats    *StatsAggregator
	renderer repository.Renderer
	archive  repository.SignalArchive
	log      *logger.Logger

	inFlight atomic.Bool
}

// NewRefresher creates the refresher. A nil renderer gets the no-op
// implementation; a nil archive disables history recording.
func NewRefresher(pipeline *SignalPipeline, stats *StatsAggregator, renderer repository.Renderer, archive repository.SignalArchive, log *logger.Logger) *Refresher {
	if renderer == nil {
		renderer = repository.NopRenderer{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Refresher{
		pipeline: pipeline,
		stats:    stats,
		renderer: renderer,
		archive:  archive,
		log:      log,
	}
}

// Refresh executes a cycle and reports whether it ran (false when dropped
// by the in-flight guard). Neither task can fail outright; each degrades
// to its own fallback, so the render is never partial.
func (r *Refresher) Refresh(ctx context.Context) bool {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.log.Debug("refresh dropped: cycle already in flight")
		return false
	}
	defer r.inFlight.Store(false)

	r.renderer.SetLoading(true)
	defer r.renderer.SetLoading(false)

	var (
		signals []models.Signal
		stats   models.Statistics
		wg      sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		signals = r.pipeline.FetchSignals(ctx)
	}()
	go func() {
		defer wg.Done()
		stats = r.stats.ComputeStatistics(ctx)
	}()
	wg.Wait()

	r.renderer.Render(signals)
	r.renderer.RenderStatistics(stats)
	if stats.SystemHealth == models.HealthError {
		// The placeholder alone looks like an idle system; tell the
		// dashboard the scan actually failed.
		r.renderer.RenderError("Statistics unavailable - the remote scan failed")
	}

	if r.archive != nil && stats.SystemHealth == models.HealthLive {
		go r.archiveSignals(signals)
	}
	return true
}

// Signals serves the current sequence without driving the renderer; the
// REST surface uses it.
func (r *Refresher) Signals(ctx context.Context) []models.Signal {
	return r.pipeline.FetchSignals(ctx)
}

// Statistics serves the current summary without driving the renderer.
func (r *Refresher) Statistics(ctx context.Context) models.Statistics {
	return r.stats.ComputeStatistics(ctx)
}

func (r *Refresher) archiveSignals(signals []models.Signal) {
	live := make([]models.Signal, 0, len(signals))
	for _, s := range signals {
		if !s.IsStatus() {
			live = append(live, s)
		}
	}
	if len(live) == 0 {
		return
	}
	if err := r.archive.ArchiveBatch(context.Background(), live); err != nil {
		r.log.Warn("signal archive write failed", logger.Error(err))
	}
}
