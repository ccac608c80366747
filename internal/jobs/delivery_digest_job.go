package jobs

import (
	"context"
	"log/slog"

	"relaypost/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultDigestSchedule logs the digest once a minute.
const DefaultDigestSchedule = "@every 1m"

// DeliveryDigestJob periodically logs delivery counts per lifecycle status.
// Read-only; it never mutates deliveries or accounts.
type DeliveryDigestJob struct {
	handler  queries.GetDeliveryStatsQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDeliveryDigestJob creates the digest job. An empty schedule falls back
// to DefaultDigestSchedule.
func NewDeliveryDigestJob(
	handler queries.GetDeliveryStatsQueryHandler,
	schedule string,
	logger *slog.Logger,
) *DeliveryDigestJob {
	if schedule == "" {
		schedule = DefaultDigestSchedule
	}
	return &DeliveryDigestJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "delivery_digest_job"),
	}
}

// Start begins the digest job on its schedule.
func (j *DeliveryDigestJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		query := queries.NewGetDeliveryStatsQuery()

		stats, statsErr := j.handler.Handle(ctx, query)
		if statsErr != nil {
			j.logger.ErrorContext(ctx, "Delivery digest job failed", "error", statsErr)
			return
		}

		j.logger.InfoContext(ctx, "Delivery digest",
			"awaiting_pickup", stats.AwaitingPickup,
			"in_transit", stats.InTransit,
			"ready_for_recipient", stats.ReadyForRecipient,
			"completed", stats.Completed,
			"cancelled", stats.Cancelled,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery digest job started", "schedule", j.schedule)
	return nil
}

// Stop stops the digest job.
func (j *DeliveryDigestJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery digest job stopped")
}
