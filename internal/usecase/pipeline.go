package usecase

import (
	"context"
	"sort"
	"time"

	"SignalDeck/internal/domain/models"
	"SignalDeck/internal/domain/repository"
	"SignalDeck/internal/remote"
	"SignalDeck/pkg/logger"
)

// The remote store bounds scans regardless of configuration.
const maxScanLimit = 20

// Session exposes the current mode and adapter handle. The mode controller
// implements it; tests substitute fixtures.
type Session interface {
	Mode() models.Mode
	Store() repository.RemoteStore
}

// Scheduler schedules a delayed callback. The default implementation is
// time.AfterFunc; tests capture the delay instead of sleeping.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) After(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// PipelineConfig carries the tunables of the fetch path.
type PipelineConfig struct {
	Table            string
	ScanLimit        int
	ScanFilter       string
	FunctionName     string
	RecencyWindow    time.Duration
	SimulatedLatency time.Duration
	DemoRefetchDelay time.Duration
	LiveRefetchDelay time.Duration
}

// SignalPipeline orchestrates adapter calls, recency filtering, sorting and
// the fallback-to-synthetic policy. FetchSignals never returns an error:
// every failure is resolved into a well-formed synthetic sequence.
type SignalPipeline struct {
	session  Session
	cfg      PipelineConfig
	sched    Scheduler
	notifier repository.Notifier
	metrics  repository.Metrics
	log      *logger.Logger

	now     func() time.Time
	refetch func()
}

// PipelineOption configures the SignalPipeline.
type PipelineOption func(*SignalPipeline)

// WithScheduler replaces the delayed-callback scheduler.
func WithScheduler(s Scheduler) PipelineOption {
	return func(p *SignalPipeline) { p.sched = s }
}

// WithNotifier routes user notifications.
func WithNotifier(n repository.Notifier) PipelineOption {
	return func(p *SignalPipeline) { p.notifier = n }
}

// WithPipelineMetrics records scan and fallback counters.
func WithPipelineMetrics(m repository.Metrics) PipelineOption {
	return func(p *SignalPipeline) { p.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *SignalPipeline) { p.now = now }
}

// NewSignalPipeline creates the pipeline.
func NewSignalPipeline(session Session, cfg PipelineConfig, log *logger.Logger, opts ...PipelineOption) *SignalPipeline {
	if cfg.ScanLimit <= 0 || cfg.ScanLimit > maxScanLimit {
		cfg.ScanLimit = maxScanLimit
	}
	if cfg.RecencyWindow <= 0 {
		cfg.RecencyWindow = 24 * time.Hour
	}
	p := &SignalPipeline{
		session:  session,
		cfg:      cfg,
		sched:    timerScheduler{},
		notifier: repository.NopNotifier{},
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Nop()
	}
	return p
}

// SetRefetch installs the callback invoked by the delayed re-fetch after a
// manual trigger. Wired late because the refresher depends on the pipeline.
func (p *SignalPipeline) SetRefetch(fn func()) { p.refetch = fn }

// FetchSignals returns the ordered signal sequence for the dashboard. In
// demo mode (or on any scan failure) it synthesizes placeholder data after
// a short simulated latency; live results are sorted newest first and cut
// to the recency window. The three empty states each yield exactly one
// status signal of identical shape but distinct reason text.
func (p *SignalPipeline) FetchSignals(ctx context.Context) []models.Signal {
	if p.session.Mode() != models.ModeLive {
		return p.syntheticSignals(ctx, demoSignal(p.now()))
	}

	store := p.session.Store()
	start := p.now()
	records, err := store.ScanTable(ctx, repository.ScanRequest{
		Table:  p.cfg.Table,
		Limit:  p.cfg.ScanLimit,
		Filter: p.cfg.ScanFilter,
	})
	if err != nil {
		// Unconditional fallback: scan errors never reach the caller.
		p.log.Error("pipeline: scan failed, falling back to demo signals", logger.Error(err))
		p.observeScan("error", start)
		p.recordFallback("scan_error")
		return p.syntheticSignals(ctx, demoSignal(p.now()))
	}
	p.observeScan("ok", start)

	if len(records) == 0 {
		p.log.Info("pipeline: table empty, showing system status")
		return []models.Signal{emptyTableSignal(p.now())}
	}

	signals := make([]models.Signal, 0, len(records))
	for _, rec := range records {
		signals = append(signals, remote.SignalFromRecord(rec))
	}

	// Newest first; ties keep input order.
	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Timestamp.After(signals[j].Timestamp)
	})

	cutoff := p.now().Add(-p.cfg.RecencyWindow)
	recent := signals[:0]
	for _, s := range signals {
		if s.Timestamp.After(cutoff) {
			recent = append(recent, s)
		}
	}

	p.log.Info("pipeline: live signals loaded",
		logger.Int("scanned", len(signals)),
		logger.Int("recent", len(recent)),
	)

	if len(recent) == 0 {
		return []models.Signal{noRecentSignal(p.now())}
	}
	return recent
}

// TriggerScan asks the compute engine for a manual market scan. The live
// path is fire-and-forget; on any failure it degrades to a simulated scan.
// Both paths schedule a delayed re-fetch: 2 s for the simulated scan so
// demo mode feels responsive, 180 s for the real one so a slow backend is
// not polled prematurely. The result is always true (accepted).
func (p *SignalPipeline) TriggerScan(ctx context.Context) bool {
	if p.session.Mode() != models.ModeLive {
		return p.simulateScan()
	}

	store := p.session.Store()
	_, err := store.InvokeTrigger(ctx, repository.TriggerRequest{
		FunctionName: p.cfg.FunctionName,
		Payload: map[string]interface{}{
			"manual_trigger": true,
			"trigger_source": "dashboard",
			"timestamp":      p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		p.log.Error("pipeline: manual trigger failed", logger.Error(err))
		p.notifier.Notify("Manual scan failed. Check remote credentials.", repository.LevelWarning)
		p.recordFallback("trigger_error")
		return p.simulateScan()
	}

	p.log.Info("pipeline: manual scan triggered")
	p.recordTrigger("live")
	p.notifier.Notify("Manual scan initiated! Check back in 2-3 minutes for new signals.", repository.LevelSuccess)
	p.scheduleRefetch(p.cfg.LiveRefetchDelay)
	return true
}

func (p *SignalPipeline) simulateScan() bool {
	p.recordTrigger("simulated")
	p.notifier.Notify("Demo scan initiated! Generating fresh signals...", repository.LevelInfo)
	p.scheduleRefetch(p.cfg.DemoRefetchDelay)
	return true
}

// syntheticSignals delays for the configured simulated latency, for
// network-like demo realism, then returns the placeholder sequence.
func (p *SignalPipeline) syntheticSignals(ctx context.Context, s models.Signal) []models.Signal {
	if p.cfg.SimulatedLatency > 0 {
		select {
		case <-time.After(p.cfg.SimulatedLatency):
		case <-ctx.Done():
		}
	}
	return []models.Signal{s}
}

func (p *SignalPipeline) scheduleRefetch(d time.Duration) {
	if p.refetch == nil {
		return
	}
	p.sched.After(d, p.refetch)
}

func (p *SignalPipeline) observeScan(outcome string, start time.Time) {
	if p.metrics != nil {
		p.metrics.RecordScan(outcome, p.now().Sub(start).Seconds())
	}
}

func (p *SignalPipeline) recordFallback(reason string) {
	if p.metrics != nil {
		p.metrics.RecordFallback(reason)
	}
}

func (p *SignalPipeline) recordTrigger(path string) {
	if p.metrics != nil {
		p.metrics.RecordTrigger(path)
	}
}
