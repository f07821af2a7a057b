package commands

import (
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents a courier reporting that the order reached
// the client. Completes the order, making its status terminal.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command reporting a completed delivery.
// Validates that both identifiers are valid.
// Returns an error if any validation fails.
func NewMarkDeliveredCommand(deliveryID kernel.UUID, courierID kernel.UUID) (MarkDeliveredCommand, error) {
	deliveredCommand := MarkDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveredCommand.setDeliveryID(deliveryID),
		deliveredCommand.setCourierID(courierID),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return deliveredCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkDeliveredCommandIsNotConstructed if validation fails.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being completed.
func (c MarkDeliveredCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the identifier of the reporting courier.
func (c MarkDeliveredCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *MarkDeliveredCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *MarkDeliveredCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
