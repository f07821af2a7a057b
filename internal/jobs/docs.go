// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. LocationHistoryFlushJob - Runs every ten seconds to persist buffered courier position reports
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the shared recorder and history writer
//	jobManager := jobs.NewJobManager(recorder, historyWriter, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// History persistence is best effort: a failed flush is logged and the batch
// is dropped so position reporting never blocks on storage. Stopping the
// manager flushes whatever remains in the buffer.
package jobs
