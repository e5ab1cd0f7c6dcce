package notify

import (
	"context"
	"time"

	"SignalDeck/pkg/kafka"
	"SignalDeck/pkg/logger"
)

// KafkaNotifier publishes notifications to a broker topic so alerting and
// ops tooling can consume what the dashboard shows as toasts. Publishing
// stays fire-and-forget: failures are logged and dropped.
type KafkaNotifier struct {
	producer *kafka.Producer
	topic    string
	log      *logger.Logger
}

type notification struct {
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

func NewKafkaNotifier(producer *kafka.Producer, topic string, log *logger.Logger) *KafkaNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &KafkaNotifier{producer: producer, topic: topic, log: log}
}

func (n *KafkaNotifier) Notify(message, level string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := n.producer.Publish(ctx, n.topic, []byte(level), notification{
			Message:   message,
			Level:     level,
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			n.log.Warn("notification publish failed", logger.Error(err))
		}
	}()
}

// Close releases the underlying producer.
func (n *KafkaNotifier) Close() error { return n.producer.Close() }
