package services

import (
	"goby/internal/core/domain/model/credits"
	"goby/internal/core/domain/model/delivery"
	"goby/internal/core/domain/model/kernel"
	"goby/internal/core/domain/model/order"
)

// DeliveryAssigner is a domain service responsible for the take-order
// workflow: checking that an order is eligible, that the courier's credits
// cover the order total, debiting the credits, flipping the order status,
// and constructing the Delivery.
//
// The service operates on in-memory aggregates only. The application layer
// is responsible for loading the aggregates under row locks and persisting
// all three in a single transaction, so the sequence below is atomic with
// respect to concurrent takers.
//
// Business rules:
//   - The order must be in pending or preparing status
//   - The courier's balance must cover the order's total price
//   - Credits are debited at take time
//   - The Delivery is bound to the courier and the order's client
//
// Example usage:
//
//	assigner := services.NewDeliveryAssigner()
//	dlv, err := assigner.Assign(order, balance, courierID, point)
//	if errors.Is(err, errs.ErrInsufficientFunds) {
//	    // courier cannot afford the order
//	}
type DeliveryAssigner struct{}

// NewDeliveryAssigner creates a new DeliveryAssigner instance.
func NewDeliveryAssigner() DeliveryAssigner {
	return DeliveryAssigner{}
}

// Assign executes the take-order workflow against the given aggregates.
//
// Parameters:
//   - ord: the order being taken (must be valid and in pending/preparing status)
//   - balance: the courier's credits balance (must be valid)
//   - courierID: the courier claiming the order
//   - point: the courier's position at take time, seeding the delivery location
//
// Returns:
//   - *delivery.Delivery: the created delivery with a fresh tracking code
//   - error: StateIsInvalid if the order is not available, InsufficientFunds
//     if the balance cannot cover the order total, or a validation error
//
// On any error both aggregates are left unmodified: eligibility and
// sufficiency are checked before the debit, and the debit itself re-checks
// sufficiency before mutating.
func (a DeliveryAssigner) Assign(
	ord *order.Order,
	balance *credits.Balance,
	courierID kernel.UUID,
	point kernel.GeoPoint,
) (*delivery.Delivery, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}
	if err := balance.Validate(); err != nil {
		return nil, err
	}
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if err := point.Validate(); err != nil {
		return nil, err
	}

	if err := ord.Status().ValidateTake(); err != nil {
		return nil, err
	}

	if err := balance.Debit(ord.TotalPrice()); err != nil {
		return nil, err
	}

	if err := ord.Take(); err != nil {
		return nil, err
	}

	return delivery.NewDelivery(
		kernel.NewUUID(),
		delivery.GenerateTrackingCode(),
		courierID,
		ord.ClientID(),
		ord.ID(),
		&point,
	)
}
