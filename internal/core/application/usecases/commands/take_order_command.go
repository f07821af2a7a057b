package commands

import (
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/guard"
)

var ErrTakeOrderCommandIsNotConstructed = errors.New(
	"TakeOrderCommand must be created via NewTakeOrderCommand constructor",
)

// TakeOrderCommand represents a courier's request to claim an order for delivery.
// Taking an order debits the courier's credits by the order total and creates
// a delivery with a fresh tracking code.
//
// Example:
//
//	cmd, err := NewTakeOrderCommand(orderID, courierID, point)
//	if err != nil {
//	    return fmt.Errorf("invalid take request: %w", err)
//	}
//
//	handler := NewTakeOrderCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to take order: %w", err)
//	}
//	fmt.Printf("Delivery %s created", result.TrackingCode)
type TakeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	location  kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewTakeOrderCommand creates a command for a courier to claim an order.
// Validates that both identifiers and the courier's location are valid.
// Returns an error if any validation fails.
func NewTakeOrderCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	location kernel.GeoPoint,
) (TakeOrderCommand, error) {
	takeCommand := TakeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		takeCommand.setOrderID(orderID),
		takeCommand.setCourierID(courierID),
		takeCommand.setLocation(location),
	); err != nil {
		return TakeOrderCommand{}, err
	}

	return takeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTakeOrderCommandIsNotConstructed if validation fails.
func (c TakeOrderCommand) Validate() error {
	return c.guard.Validate(ErrTakeOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c TakeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the claiming courier.
func (c TakeOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the courier's position at take time.
func (c TakeOrderCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *TakeOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TakeOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *TakeOrderCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
