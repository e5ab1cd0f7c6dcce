// Package notify implements the user-notification collaborator. Delivery
// is fire-and-forget; the dashboard auto-dismisses what it shows.
package notify

import (
	"SignalDeck/internal/domain/repository"
	"SignalDeck/pkg/logger"
)

// LogNotifier writes notifications to the structured log; the default
// transport when no broker is configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(message, level string) {
	switch level {
	case repository.LevelWarning:
		n.log.Warn("notification", logger.String("message", message))
	case repository.LevelError:
		n.log.Error("notification", logger.String("message", message))
	default:
		n.log.Info("notification", logger.String("message", message), logger.String("level", level))
	}
}
