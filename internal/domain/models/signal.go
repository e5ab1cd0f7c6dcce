package models

import "time"

// Mode is the runtime decision of whether the dashboard is served live
// remote data or locally synthesized placeholder data.
type Mode string

const (
	ModeUninitialized Mode = "UNINITIALIZED"
	ModeDemo          Mode = "DEMO"
	ModeLive          Mode = "LIVE"
)

// System health values reported alongside statistics.
const (
	HealthLive  = "LIVE"
	HealthDemo  = "DEMO"
	HealthError = "ERROR"
)

// Sentinel symbols and the type label used by synthetic status signals.
const (
	SymbolSystem     = "SYSTEM"
	SymbolInfo       = "INFO"
	SignalTypeStatus = "STATUS"
)

// Technical indicator names carried in Signal.Technical. Absent indicators
// read as zero.
const (
	IndRSI           = "rsi"
	IndVolumeRatio   = "volume_ratio"
	IndPriceChange5d = "price_change_5d"
	IndMACD          = "macd"
	IndSMA20         = "sma_20"
	IndSignalScore   = "signal_score"
)

// TechnicalData maps indicator name to value.
type TechnicalData map[string]float64

// At returns the named indicator, or zero when absent.
func (t TechnicalData) At(name string) float64 {
	if t == nil {
		return 0
	}
	return t[name]
}

// Signal is a normalized trading recommendation or status record. Every
// Signal handed to the rendering boundary has all fields populated; status
// entries use SymbolSystem/SymbolInfo with SignalTypeStatus and zero price.
type Signal struct {
	Symbol     string        `json:"symbol"`
	SignalType string        `json:"signal_type"`
	Confidence float64       `json:"confidence"`
	Price      float64       `json:"price"`
	Timestamp  time.Time     `json:"timestamp"`
	Reasons    []string      `json:"reasons"`
	Technical  TechnicalData `json:"technical_data"`
}

// IsStatus reports whether s is a synthetic informational entry rather than
// a tradeable recommendation.
func (s Signal) IsStatus() bool { return s.SignalType == SignalTypeStatus }

// Statistics is the derived summary shown in the dashboard header. It is
// recomputed on every refresh cycle and never persisted.
type Statistics struct {
	TotalSignals   int    `json:"total_signals"`
	HighConfidence int    `json:"high_confidence"`
	BuySignals     int    `json:"buy_signals"`
	SellSignals    int    `json:"sell_signals"`
	SystemHealth   string `json:"system_health"`
}
