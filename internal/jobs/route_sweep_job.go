package jobs

import (
	"context"
	"log/slog"

	"coldchain/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RouteSweepJob periodically closes in-progress routes whose stops are all
// settled. The event-driven path closes a route when its last delivery
// completes, but stops skipped in the back office bypass that path; the sweep
// catches those routes.
type RouteSweepJob struct {
	handler commands.CloseFinishedRoutesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRouteSweepJob creates a job that sweeps routes once a minute.
func NewRouteSweepJob(handler commands.CloseFinishedRoutesCommandHandler, logger *slog.Logger) *RouteSweepJob {
	return &RouteSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "route_sweep_job"),
	}
}

// Start begins the route sweep job to run at the top of every minute.
func (j *RouteSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewCloseFinishedRoutesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Route sweep job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Route sweep job started (running every minute)")
	return nil
}

// Stop stops the route sweep job.
func (j *RouteSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Route sweep job stopped")
}
