// Package export renders the signal sequence for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"SignalDeck/internal/domain/models"
	"SignalDeck/pkg/util"
)

// Column order is part of the export contract; downstream spreadsheets
// depend on it.
var csvHeader = []string{
	"Timestamp",
	"Symbol",
	"Signal Type",
	"Confidence %",
	"Current Price",
	"RSI",
	"Volume Ratio",
	"5-Day Change %",
	"MACD",
	"SMA 20",
	"Signal Score",
	"Key Reasons",
}

// WriteCSV streams the signal sequence as CSV, one row per signal, reasons
// joined with "; ". Quoting follows encoding/csv.
func WriteCSV(w io.Writer, signals []models.Signal) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range signals {
		row := []string{
			s.Timestamp.UTC().Format(time.RFC3339),
			s.Symbol,
			s.SignalType,
			util.FormatFloat(s.Confidence),
			util.FormatFloat(s.Price),
			util.FormatFloat(s.Technical.At(models.IndRSI)),
			util.FormatFloat(s.Technical.At(models.IndVolumeRatio)),
			util.FormatFloat(s.Technical.At(models.IndPriceChange5d)),
			util.FormatFloat(s.Technical.At(models.IndMACD)),
			util.FormatFloat(s.Technical.At(models.IndSMA20)),
			util.FormatFloat(s.Technical.At(models.IndSignalScore)),
			strings.Join(s.Reasons, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
