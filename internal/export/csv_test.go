package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"SignalDeck/internal/domain/models"
)

func TestWriteCSV(t *testing.T) {
	signals := []models.Signal{
		{
			Symbol:     "AAPL",
			SignalType: "BUY",
			Confidence: 85,
			Price:      189.5,
			Timestamp:  time.Date(2026, 8, 27, 14, 30, 0, 0, time.UTC),
			Reasons:    []string{"RSI oversold", "Volume spike, unusual"},
			Technical: models.TechnicalData{
				models.IndRSI:         28.3,
				models.IndVolumeRatio: 2.1,
				models.IndSignalScore: 7.5,
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, signals); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if lines[0] != "Timestamp,Symbol,Signal Type,Confidence %,Current Price,RSI,Volume Ratio,5-Day Change %,MACD,SMA 20,Signal Score,Key Reasons" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	// Reasons join with "; " and the comma forces quoting.
	if lines[1] != `2026-08-27T14:30:00Z,AAPL,BUY,85,189.5,28.3,2.1,0,0,0,7.5,"RSI oversold; Volume spike, unusual"` {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the header, got %d lines", len(lines))
	}
}
