package jobs

import (
	"fmt"
	"log/slog"

	"goby/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	locationHistoryFlushJob *LocationHistoryFlushJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the shared recorder and history writer as dependencies.
func NewJobManager(
	recorder *BufferedLocationRecorder,
	historyWriter ports.LocationHistoryWriter,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		locationHistoryFlushJob: NewLocationHistoryFlushJob(recorder, historyWriter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.locationHistoryFlushJob.Start(); err != nil {
		return fmt.Errorf("failed to start location history flush job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully, flushing pending samples.
func (jm *JobManager) StopAll() {
	jm.locationHistoryFlushJob.Stop()
}
