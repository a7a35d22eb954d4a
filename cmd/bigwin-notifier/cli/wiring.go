package cli

import (
	"context"
	"fmt"

	"github.com/highroll-gg/bigwin-notifier/internal/clients/eventsclient"
	"github.com/highroll-gg/bigwin-notifier/internal/clients/webhookclient"
	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/db"
	"github.com/highroll-gg/bigwin-notifier/internal/queue"
	"github.com/highroll-gg/bigwin-notifier/internal/services"
)

// buildService wires the checkpoint store, upstream client, webhook client
// and queue producer into a Service according to the loaded config.
func buildService(ctx context.Context, cfg *config.Config) (*services.Service, db.DbInterface, error) {
	var store db.DbInterface
	switch cfg.Cursor.Backend {
	case config.CursorBackendRedis:
		store = db.NewRedisStore(cfg.Redis)
	default:
		mongoStore, err := db.New(ctx, cfg.Db)
		if err != nil {
			return nil, nil, fmt.Errorf("error while creating db client: %w", err)
		}
		store = mongoStore
	}
	if err := store.Ping(ctx); err != nil {
		return nil, nil, fmt.Errorf("checkpoint store is unreachable: %w", err)
	}

	eventsClient := eventsclient.NewClient(
		&cfg.Events,
		cfg.Notifier.MetricSelector(),
		cfg.Notifier.ThresholdRaw,
	)
	webhookClient := webhookclient.NewClient(&cfg.Webhook)
	qm := queue.NewQueueManager(&cfg.Kafka)

	service := services.NewService(cfg, store, eventsClient, webhookClient, qm)
	return service, store, nil
}
