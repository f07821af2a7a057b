package jobs

import (
	"context"
	"log/slog"

	"goby/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// LocationHistoryFlushJob periodically persists buffered courier position
// reports. History is best effort: when a flush fails the batch is logged
// and dropped rather than blocking future reports.
type LocationHistoryFlushJob struct {
	recorder *BufferedLocationRecorder
	writer   ports.LocationHistoryWriter
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLocationHistoryFlushJob creates a new job flushing the given recorder
// through the given writer.
func NewLocationHistoryFlushJob(
	recorder *BufferedLocationRecorder,
	writer ports.LocationHistoryWriter,
	logger *slog.Logger,
) *LocationHistoryFlushJob {
	return &LocationHistoryFlushJob{
		recorder: recorder,
		writer:   writer,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "location_history_flush_job"),
	}
}

// Start begins the flush job to run every ten seconds.
func (j *LocationHistoryFlushJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		j.Flush(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location history flush job started (running every ten seconds)")
	return nil
}

// Flush drains the recorder and writes the batch to storage.
func (j *LocationHistoryFlushJob) Flush(ctx context.Context) {
	samples := j.recorder.Drain()
	if len(samples) == 0 {
		return
	}

	if err := j.writer.Append(ctx, samples); err != nil {
		j.logger.ErrorContext(ctx, "Location history flush failed", "error", err, "dropped", len(samples))
		return
	}

	j.logger.DebugContext(ctx, "Location history flushed", "samples", len(samples))
}

// Stop stops the flush job and writes out any remaining samples.
func (j *LocationHistoryFlushJob) Stop() {
	j.cron.Stop()
	j.Flush(context.Background())
	j.logger.InfoContext(context.Background(), "Location history flush job stopped")
}
