package commands

import (
	"errors"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/guard"
)

var ErrArriveAtStopCommandIsNotConstructed = errors.New(
	"ArriveAtStopCommand must be created via NewArriveAtStopCommand constructor",
)

// ArriveAtStopCommand represents a driver reporting arrival at a route stop.
type ArriveAtStopCommand struct { //nolint:recvcheck //using for validation
	stopID   kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewArriveAtStopCommand creates a command to mark a stop as arrived.
func NewArriveAtStopCommand(stopID, driverID kernel.UUID) (ArriveAtStopCommand, error) {
	cmd := ArriveAtStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStopID(stopID),
		cmd.setDriverID(driverID),
	); err != nil {
		return ArriveAtStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrArriveAtStopCommandIsNotConstructed if validation fails.
func (c ArriveAtStopCommand) Validate() error {
	return c.guard.Validate(ErrArriveAtStopCommandIsNotConstructed)
}

// StopID returns the stop the driver arrived at.
func (c ArriveAtStopCommand) StopID() kernel.UUID {
	return c.stopID
}

// DriverID returns the reporting driver.
func (c ArriveAtStopCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *ArriveAtStopCommand) setStopID(stopID kernel.UUID) error {
	if err := stopID.Validate(); err != nil {
		return err
	}

	c.stopID = stopID
	return nil
}

func (c *ArriveAtStopCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
