package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/types"
)

// QueueManager fans qualifying wins out to a Kafka topic for downstream
// consumers (leaderboards, analytics). Optional: a nil manager is a no-op.
type QueueManager struct {
	writer *kafka.Writer
}

func NewQueueManager(cfg *config.KafkaConfig) *QueueManager {
	if !cfg.Enabled() {
		return nil
	}
	return &QueueManager{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PushWinEvent publishes one qualifying win, keyed by its (round, intra)
// identity so replays land in the same partition.
func (qm *QueueManager) PushWinEvent(ctx context.Context, event *types.WinEvent) error {
	if qm == nil {
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal win event %s: %w", event.Position(), err)
	}

	return qm.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Position().String()),
		Value: value,
	})
}

// Shutdown gracefully stops the interaction with the queue, ensuring all
// resources are properly released.
func (qm *QueueManager) Shutdown() {
	if qm == nil {
		return
	}
	log.Info().Msg("Shutting down queue manager")
	if err := qm.writer.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing kafka writer")
	}
}
