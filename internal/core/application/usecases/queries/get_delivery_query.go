// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves the full state of a single delivery, including
// the status of the order it carries.
//
// Example:
//
//	query, err := NewGetDeliveryQuery(deliveryID)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery id: %w", err)
//	}
//
//	handler := NewGetDeliveryQueryHandler(db)
//	info, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve delivery: %w", err)
//	}
//	fmt.Printf("Delivery %s is %s\n", info.TrackingCode, info.OrderStatus)
type GetDeliveryQuery struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query to retrieve a delivery by its identifier.
// Returns an error when the identifier is invalid.
func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryQueryIsNotConstructed if validation fails.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the identifier of the requested delivery.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// GetDeliveryLocationResponse is the courier's last reported position within
// a delivery read model. Nil when no position has been reported yet.
type GetDeliveryLocationResponse struct {
	Latitude  float64
	Longitude float64
}

// GetDeliveryQueryResponse represents a delivery in the read model.
type GetDeliveryQueryResponse struct {
	ID           kernel.UUID
	TrackingCode string
	CourierID    kernel.UUID
	ClientID     kernel.UUID
	OrderID      kernel.UUID
	OrderStatus  string
	Location     *GetDeliveryLocationResponse
}
