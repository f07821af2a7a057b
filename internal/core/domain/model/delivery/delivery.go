package delivery

import (
	"errors"
	"fmt"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not created
	// through the NewDelivery or RestoreDelivery factory methods.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Delivery represents a courier's claim on an order. It is created exactly
// once per order, at the moment the courier takes it, and tracks the
// courier's reported position for the rest of the order's lifecycle.
//
// Delivery follows these invariants:
//   - Must reference a valid courier, client, and order
//   - Carries a unique human-readable tracking code
//   - The current location is nil until the first report, then always valid
//   - Only the assigned courier may mutate the delivery (EnsureOwnedBy)
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// trackingCode is the short human-readable identifier shown to clients
	trackingCode string

	// courierID is the courier who took the order
	courierID kernel.UUID

	// clientID is the recipient, copied from the order at creation
	clientID kernel.UUID

	// orderID references the order being delivered
	orderID kernel.UUID

	// current is the courier's last reported position (nil until first report)
	current *kernel.GeoPoint

	// isConstructed ensures the delivery was created via a constructor
	isConstructed bool
}

// NewDelivery creates a Delivery binding a courier to an order.
//
// Parameters:
//   - id: unique identifier for the delivery
//   - trackingCode: freshly generated tracking code (see GenerateTrackingCode)
//   - courierID: the courier claiming the order
//   - clientID: the order's client, copied at creation
//   - orderID: the order being delivered
//   - current: the courier's position at take time (may be nil)
//
// Returns:
//   - *Delivery: the created delivery if all validations pass
//   - error: validation error if any parameter is invalid
func NewDelivery(
	id kernel.UUID,
	trackingCode string,
	courierID kernel.UUID,
	clientID kernel.UUID,
	orderID kernel.UUID,
	current *kernel.GeoPoint,
) (*Delivery, error) {
	delivery := &Delivery{
		isConstructed: true,
	}

	if err := errors.Join(
		delivery.setID(id),
		delivery.setTrackingCode(trackingCode),
		delivery.setCourierID(courierID),
		delivery.setClientID(clientID),
		delivery.setOrderID(orderID),
		delivery.setCurrent(current),
	); err != nil {
		return nil, err
	}

	return delivery, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage.
// Validation mirrors NewDelivery so corrupted rows cannot produce an
// invalid aggregate.
func RestoreDelivery(
	id kernel.UUID,
	trackingCode string,
	courierID kernel.UUID,
	clientID kernel.UUID,
	orderID kernel.UUID,
	current *kernel.GeoPoint,
) (*Delivery, error) {
	return NewDelivery(id, trackingCode, courierID, clientID, orderID, current)
}

// Validate ensures the Delivery instance was properly constructed through
// NewDelivery or RestoreDelivery.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}

	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// TrackingCode returns the human-readable tracking code.
func (d *Delivery) TrackingCode() string {
	return d.trackingCode
}

// CourierID returns the identifier of the assigned courier.
func (d *Delivery) CourierID() kernel.UUID {
	return d.courierID
}

// ClientID returns the identifier of the order's client.
func (d *Delivery) ClientID() kernel.UUID {
	return d.clientID
}

// OrderID returns the identifier of the order being delivered.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// CurrentLocation returns the courier's last reported position,
// or nil if no position has been reported yet.
func (d *Delivery) CurrentLocation() *kernel.GeoPoint {
	if d.current == nil {
		return nil
	}
	point := *d.current
	return &point
}

// BelongsTo reports whether the delivery is owned by the given courier.
func (d *Delivery) BelongsTo(courierID kernel.UUID) bool {
	return d.courierID.IsEqual(courierID)
}

// EnsureOwnedBy verifies that the caller is the delivery's assigned courier.
// Every mutating delivery operation goes through this check.
//
// Returns a Forbidden error when the caller is not the owner.
func (d *Delivery) EnsureOwnedBy(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if !d.BelongsTo(courierID) {
		return errs.NewForbiddenErrorWithCause("delivery",
			fmt.Errorf("courier %s is not assigned to delivery %s", courierID, d.id))
	}
	return nil
}

// MoveTo overwrites the delivery's current position with a validated point.
func (d *Delivery) MoveTo(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	d.current = &point
	return nil
}

// setID validates and sets the delivery's unique identifier.
// This is a private method used only during construction.
func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setTrackingCode validates and sets the tracking code.
// This is a private method used only during construction.
func (d *Delivery) setTrackingCode(code string) error {
	if err := ValidateTrackingCode(code); err != nil {
		return err
	}
	d.trackingCode = code
	return nil
}

// setCourierID validates and sets the assigned courier reference.
// This is a private method used only during construction.
func (d *Delivery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	d.courierID = courierID
	return nil
}

// setClientID validates and sets the client reference.
// This is a private method used only during construction.
func (d *Delivery) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	d.clientID = clientID
	return nil
}

// setOrderID validates and sets the order reference.
// This is a private method used only during construction.
func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

// setCurrent validates and sets the initial position, which may be nil.
// This is a private method used only during construction.
func (d *Delivery) setCurrent(current *kernel.GeoPoint) error {
	if current == nil {
		return nil
	}
	if err := current.Validate(); err != nil {
		return err
	}
	point := *current
	d.current = &point
	return nil
}
