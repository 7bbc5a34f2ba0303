// Package jobs provides scheduled background tasks for the cold-chain
// delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. RouteSweepJob - Runs every minute to close in-progress routes whose
// stops have all reached a terminal state, releasing their drivers and
// vehicles.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(closeFinishedRoutesHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "0 * * * * *", firing at the top of
// every minute. Route closure is idempotent, so a sweep overlapping the
// event-driven closure path is harmless.
//
// # Error Handling
//
// - Sweep errors are logged and retried on the next tick
// - Failed job starts stop any already running jobs
package jobs
