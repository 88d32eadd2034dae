package jobs

import (
	"context"
	"log/slog"

	"grocery/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// relayBatchSize bounds how many backlog events one tick drains.
const relayBatchSize = 100

// OutboxRelayJob republishes order events that were committed to the outbox
// but never marked published, typically because the process crashed between
// commit and fan-out. Runs every second.
//
// The normal path publishes immediately after commit, so the relay usually
// finds an empty backlog. When it does find work, subscribers may see an
// event a second time; snapshots make the duplicate harmless.
type OutboxRelayJob struct {
	events    ports.EventRepository
	orders    ports.OrderRepository
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates a relay over the given repositories and fan-out.
func NewOutboxRelayJob(
	events ports.EventRepository,
	orders ports.OrderRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		events:    events,
		orders:    orders,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.relayOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) relayOnce(ctx context.Context) {
	backlog, err := j.events.GetUnpublished(ctx, relayBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to read outbox backlog", "error", err)
		return
	}

	for _, event := range backlog {
		snapshot, err := j.orders.Get(ctx, event.OrderID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to load order for backlog event",
				"event_id", event.ID().String(),
				"order_id", event.OrderID().String(),
				"error", err,
			)
			continue
		}

		j.publisher.Publish(ctx, event, snapshot)

		if err := j.events.MarkPublished(ctx, event.ID()); err != nil {
			// The event stays unpublished and is retried next tick.
			j.logger.ErrorContext(ctx, "Failed to mark event published",
				"event_id", event.ID().String(),
				"error", err,
			)
		}
	}
}
