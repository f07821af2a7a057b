package commands

import (
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/guard"
)

var ErrArriveAtRestaurantCommandIsNotConstructed = errors.New(
	"ArriveAtRestaurantCommand must be created via NewArriveAtRestaurantCommand constructor",
)

// ArriveAtRestaurantCommand represents a courier reporting pickup of the order
// at the restaurant. Moves the order from taken to delivering and records the
// courier's position on the delivery.
type ArriveAtRestaurantCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID
	location   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewArriveAtRestaurantCommand creates a command reporting arrival at the restaurant.
// Validates that both identifiers and the reported location are valid.
// Returns an error if any validation fails.
func NewArriveAtRestaurantCommand(
	deliveryID kernel.UUID,
	courierID kernel.UUID,
	location kernel.GeoPoint,
) (ArriveAtRestaurantCommand, error) {
	arriveCommand := ArriveAtRestaurantCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		arriveCommand.setDeliveryID(deliveryID),
		arriveCommand.setCourierID(courierID),
		arriveCommand.setLocation(location),
	); err != nil {
		return ArriveAtRestaurantCommand{}, err
	}

	return arriveCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrArriveAtRestaurantCommandIsNotConstructed if validation fails.
func (c ArriveAtRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrArriveAtRestaurantCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being advanced.
func (c ArriveAtRestaurantCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the identifier of the reporting courier.
func (c ArriveAtRestaurantCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the courier's position at pickup time.
func (c ArriveAtRestaurantCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *ArriveAtRestaurantCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ArriveAtRestaurantCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *ArriveAtRestaurantCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
