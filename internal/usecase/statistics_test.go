package usecase

import (
	"context"
	"testing"
	"time"

	"SignalDeck/internal/domain/models"
	"SignalDeck/internal/remote/wire"
)

func statsRecord(signalType, confidence string) wire.Record {
	return wire.Record{
		"symbol":      wire.String("X"),
		"signal_type": wire.String(signalType),
		"confidence":  wire.Number(confidence),
		"timestamp":   wire.String(testClock.Format(time.RFC3339)),
	}
}

func TestComputeStatisticsLive(t *testing.T) {
	store := &fakeStore{records: []wire.Record{
		statsRecord("BUY", "90"),
		statsRecord("SELL", "50"),
		statsRecord("BUY_STRONG", "80"),
	}}
	a := NewStatsAggregator(&fakeSession{mode: models.ModeLive, store: store}, "signals", 20, nil)

	got := a.ComputeStatistics(context.Background())

	if got.TotalSignals != 3 {
		t.Fatalf("expected 3 total, got %d", got.TotalSignals)
	}
	// The threshold is inclusive.
	if got.HighConfidence != 2 {
		t.Fatalf("expected 2 high confidence, got %d", got.HighConfidence)
	}
	if got.BuySignals != 2 || got.SellSignals != 1 {
		t.Fatalf("expected 2 buy / 1 sell, got %d/%d", got.BuySignals, got.SellSignals)
	}
	if got.SystemHealth != models.HealthLive {
		t.Fatalf("expected LIVE health, got %s", got.SystemHealth)
	}
}

func TestComputeStatisticsDemo(t *testing.T) {
	a := NewStatsAggregator(&fakeSession{mode: models.ModeDemo}, "signals", 20, nil)

	got := a.ComputeStatistics(context.Background())

	if got.TotalSignals != 0 || got.SystemHealth != models.HealthDemo {
		t.Fatalf("expected demo placeholder, got %+v", got)
	}
}

func TestComputeStatisticsScanError(t *testing.T) {
	store := &fakeStore{scanErr: context.DeadlineExceeded}
	a := NewStatsAggregator(&fakeSession{mode: models.ModeLive, store: store}, "signals", 20, nil)

	got := a.ComputeStatistics(context.Background())

	if got.SystemHealth != models.HealthError {
		t.Fatalf("expected ERROR health, got %s", got.SystemHealth)
	}
	if got.TotalSignals != 0 {
		t.Fatalf("error placeholder must not carry counts")
	}
}
