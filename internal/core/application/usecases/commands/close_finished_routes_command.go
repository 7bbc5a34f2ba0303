package commands

import (
	"errors"

	"coldchain/internal/pkg/guard"
)

var ErrCloseFinishedRoutesCommandIsNotConstructed = errors.New(
	"CloseFinishedRoutesCommand must be created via NewCloseFinishedRoutesCommand constructor",
)

// CloseFinishedRoutesCommand triggers a sweep over in-progress routes,
// closing every route whose stops have all terminated. The sweep is a safety
// net behind the in-transaction completion check: it catches routes whose
// last stop terminated through a path that skipped the monitor.
type CloseFinishedRoutesCommand struct {
	guard guard.ConstructorGuard
}

// NewCloseFinishedRoutesCommand creates a new command to trigger the sweep.
// This is a parameterless command, typically issued by a scheduled job.
func NewCloseFinishedRoutesCommand() CloseFinishedRoutesCommand {
	return CloseFinishedRoutesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrCloseFinishedRoutesCommandIsNotConstructed if validation fails.
func (c *CloseFinishedRoutesCommand) Validate() error {
	return c.guard.Validate(
		ErrCloseFinishedRoutesCommandIsNotConstructed,
	)
}
