package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"SignalDeck/internal/domain/models"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	scanLatency *prometheus.HistogramVec
	fallbacks   *prometheus.CounterVec
	triggers    *prometheus.CounterVec
	mode        *prometheus.GaugeVec
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		scanLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "signaldeck",
				Name:      "scan_duration_seconds",
				Help:      "Latency of remote table scans",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		fallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "signaldeck",
				Name:      "fallbacks_total",
				Help:      "Synthetic-data substitutions by reason",
			},
			[]string{"reason"},
		),
		triggers: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "signaldeck",
				Name:      "manual_triggers_total",
				Help:      "Manual scans by path (live or simulated)",
			},
			[]string{"path"},
		),
		mode: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "signaldeck",
				Name:      "mode",
				Help:      "Current mode, 1 for the active one",
			},
			[]string{"mode"},
		),
	}
}

func (r *Recorder) RecordScan(outcome string, seconds float64) {
	r.scanLatency.WithLabelValues(outcome).Observe(seconds)
}

func (r *Recorder) RecordFallback(reason string) {
	r.fallbacks.WithLabelValues(reason).Inc()
}

func (r *Recorder) RecordTrigger(path string) {
	r.triggers.WithLabelValues(path).Inc()
}

func (r *Recorder) RecordMode(mode models.Mode) {
	for _, m := range []models.Mode{models.ModeUninitialized, models.ModeDemo, models.ModeLive} {
		v := 0.0
		if m == mode {
			v = 1
		}
		r.mode.WithLabelValues(string(m)).Set(v)
	}
}
