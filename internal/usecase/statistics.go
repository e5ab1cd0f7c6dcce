package usecase

import (
	"context"
	"strings"

	"SignalDeck/internal/domain/models"
	"SignalDeck/internal/domain/repository"
	"SignalDeck/internal/remote"
	"SignalDeck/pkg/logger"
)

// Signals at or above this confidence count as high confidence.
const highConfidenceThreshold = 80

// StatsAggregator derives the dashboard summary counts. It issues its own
// table scan rather than reusing the signal fetch; the two queries are
// deliberately independent.
type StatsAggregator struct {
	session Session
	table   string
	limit   int
	log     *logger.Logger
}

// NewStatsAggregator creates the aggregator.
func NewStatsAggregator(session Session, table string, limit int, log *logger.Logger) *StatsAggregator {
	if limit <= 0 || limit > maxScanLimit {
		limit = maxScanLimit
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StatsAggregator{session: session, table: table, limit: limit, log: log}
}

// ComputeStatistics returns placeholder values in demo mode, live counts
// otherwise, and an ERROR-health placeholder when the scan fails. Errors
// never escape.
func (a *StatsAggregator) ComputeStatistics(ctx context.Context) models.Statistics {
	if a.session.Mode() != models.ModeLive {
		return placeholderStats(models.HealthDemo)
	}

	records, err := a.session.Store().ScanTable(ctx, repository.ScanRequest{
		Table: a.table,
		Limit: a.limit,
	})
	if err != nil {
		a.log.Error("statistics: scan failed", logger.Error(err))
		return placeholderStats(models.HealthError)
	}

	stats := models.Statistics{SystemHealth: models.HealthLive}
	for _, rec := range records {
		s := remote.SignalFromRecord(rec)
		stats.TotalSignals++
		if s.Confidence >= highConfidenceThreshold {
			stats.HighConfidence++
		}
		// Substring match tolerates compound labels like BUY_STRONG.
		if strings.Contains(s.SignalType, "BUY") {
			stats.BuySignals++
		}
		if strings.Contains(s.SignalType, "SELL") {
			stats.SellSignals++
		}
	}
	return stats
}

// placeholderStats will not be mistaken for real signal activity: zero
// counts plus a non-LIVE health label.
func placeholderStats(health string) models.Statistics {
	return models.Statistics{SystemHealth: health}
}
