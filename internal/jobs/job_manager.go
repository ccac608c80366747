package jobs

import (
	"fmt"
	"log/slog"

	"relaypost/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryDigestJob *DeliveryDigestJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	statsHandler queries.GetDeliveryStatsQueryHandler,
	digestSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryDigestJob: NewDeliveryDigestJob(statsHandler, digestSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryDigestJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery digest job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryDigestJob.Stop()
}
