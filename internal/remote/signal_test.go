package remote

import (
	"testing"
	"time"

	"SignalDeck/internal/remote/wire"
)

func TestSignalFromRecord(t *testing.T) {
	rec := wire.Record{
		"symbol":      wire.String("AAPL"),
		"signal_type": wire.String("BUY"),
		"confidence":  wire.Number("85"),
		"price":       wire.Number("189.5"),
		"timestamp":   wire.String("2026-08-27T14:30:00Z"),
		"reasons":     wire.List(wire.String("RSI oversold"), wire.Number("3")),
		"technical_data": wire.Map(map[string]wire.Value{
			"rsi":          wire.Number("28.3"),
			"volume_ratio": wire.Number("2.1"),
		}),
	}

	s := SignalFromRecord(rec)

	if s.Symbol != "AAPL" || s.SignalType != "BUY" {
		t.Fatalf("unexpected identity %s/%s", s.Symbol, s.SignalType)
	}
	if s.Confidence != 85 || s.Price != 189.5 {
		t.Fatalf("unexpected numbers %v/%v", s.Confidence, s.Price)
	}
	want := time.Date(2026, 8, 27, 14, 30, 0, 0, time.UTC)
	if !s.Timestamp.Equal(want) {
		t.Fatalf("unexpected timestamp %v", s.Timestamp)
	}
	if len(s.Reasons) != 2 || s.Reasons[0] != "RSI oversold" || s.Reasons[1] != "3" {
		t.Fatalf("unexpected reasons %v", s.Reasons)
	}
	if s.Technical["rsi"] != 28.3 || s.Technical["volume_ratio"] != 2.1 {
		t.Fatalf("unexpected technical %v", s.Technical)
	}
}

func TestSignalFromEmptyRecord(t *testing.T) {
	s := SignalFromRecord(wire.Record{})

	if s.Reasons == nil || s.Technical == nil {
		t.Fatalf("expected non-nil reasons and technical data")
	}
	if !s.Timestamp.IsZero() {
		t.Fatalf("expected zero timestamp, got %v", s.Timestamp)
	}
}

func TestNewClientRejectsMissingConfig(t *testing.T) {
	if _, err := NewClient("", Credentials{AccessKey: "a", SecretKey: "b"}, time.Second); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
	if _, err := NewClient("https://api.example.com", Credentials{}, time.Second); err == nil {
		t.Fatalf("expected error for missing credentials")
	}
	if _, err := NewClient("ftp://api.example.com", Credentials{AccessKey: "a", SecretKey: "b"}, time.Second); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestNewClientAccepts(t *testing.T) {
	c, err := NewClient("https://api.example.com", Credentials{AccessKey: "a", SecretKey: "b"}, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil {
		t.Fatalf("expected client")
	}
}
