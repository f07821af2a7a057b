package commands

import (
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand represents a courier's periodic position report for a
// delivery in progress. Overwrites the delivery's current location without
// touching the order status.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID
	location   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand creates a command carrying a courier position report.
// Validates that both identifiers and the reported location are valid.
// Returns an error if any validation fails.
func NewUpdateLocationCommand(
	deliveryID kernel.UUID,
	courierID kernel.UUID,
	location kernel.GeoPoint,
) (UpdateLocationCommand, error) {
	locationCommand := UpdateLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		locationCommand.setDeliveryID(deliveryID),
		locationCommand.setCourierID(courierID),
		locationCommand.setLocation(location),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return locationCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateLocationCommandIsNotConstructed if validation fails.
func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being tracked.
func (c UpdateLocationCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the identifier of the reporting courier.
func (c UpdateLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the reported position.
func (c UpdateLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateLocationCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *UpdateLocationCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *UpdateLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
