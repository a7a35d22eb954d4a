package services

import (
	"context"

	"github.com/highroll-gg/bigwin-notifier/internal/clients/eventsclient"
	"github.com/highroll-gg/bigwin-notifier/internal/clients/webhookclient"
	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/db"
	"github.com/highroll-gg/bigwin-notifier/internal/observability/metrics"
	"github.com/highroll-gg/bigwin-notifier/internal/queue"
	"github.com/highroll-gg/bigwin-notifier/internal/utils/poller"
)

type Service struct {
	cfg          *config.Config
	db           db.DbInterface
	events       eventsclient.EventsInterface
	webhook      webhookclient.WebhookInterface
	queueManager *queue.QueueManager
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	events eventsclient.EventsInterface,
	webhook webhookclient.WebhookInterface,
	qm *queue.QueueManager,
) *Service {
	return &Service{
		cfg:          cfg,
		db:           db,
		events:       events,
		webhook:      webhook,
		queueManager: qm,
	}
}

// StartCyclePoller runs cycles on a ticker when a polling interval is
// configured. The HTTP trigger works either way.
func (s *Service) StartCyclePoller(ctx context.Context) {
	if s.cfg.Notifier.PollingInterval <= 0 {
		return
	}
	cyclePoller := poller.NewPoller(
		s.cfg.Notifier.PollingInterval,
		metrics.RecordCycleDuration(s.runCycle),
	)
	go cyclePoller.Start(ctx)
}

func (s *Service) runCycle(ctx context.Context) error {
	_, err := s.RunCycle(ctx)
	return err
}
