package usecase

import (
	"time"

	"SignalDeck/internal/domain/models"
)

// The three empty states share one structural shape, a single STATUS
// signal, so the rendering layer never special-cases emptiness. Only the
// reason text differs.

func demoSignal(now time.Time) models.Signal {
	return statusSignal(models.SymbolSystem, now, []string{
		"Demo mode - connect to the remote store for live data",
		"Open System Config to enter access credentials",
		"System ready to connect to real trading signals",
		"Compute engine and signal table are configured",
	}, zeroTechnical())
}

func emptyTableSignal(now time.Time) models.Signal {
	return statusSignal(models.SymbolSystem, now, []string{
		"Connected to the remote store successfully!",
		"The compute engine runs every 30 minutes during market hours",
		"No signals found yet - the system is selective",
		"Signals will appear when market opportunities arise",
	}, zeroTechnical())
}

func noRecentSignal(now time.Time) models.Signal {
	return statusSignal(models.SymbolInfo, now, []string{
		"Connected to the remote store - no recent trading signals found",
		"The system scanned the market but no opportunities met criteria",
		"This is normal - the system is selective",
		"Signals will appear during volatile market conditions",
	}, models.TechnicalData{
		models.IndRSI:           50,
		models.IndVolumeRatio:   1,
		models.IndPriceChange5d: 0,
		models.IndSMA20:         0,
	})
}

func statusSignal(symbol string, now time.Time, reasons []string, tech models.TechnicalData) models.Signal {
	return models.Signal{
		Symbol:     symbol,
		SignalType: models.SignalTypeStatus,
		Confidence: 100,
		Price:      0,
		Timestamp:  now,
		Reasons:    reasons,
		Technical:  tech,
	}
}

func zeroTechnical() models.TechnicalData {
	return models.TechnicalData{
		models.IndRSI:           0,
		models.IndVolumeRatio:   0,
		models.IndPriceChange5d: 0,
		models.IndSMA20:         0,
	}
}
