package queries

import (
	"errors"
	"time"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/guard"
)

var ErrGetDeliveryLocationQueryIsNotConstructed = errors.New(
	"GetDeliveryLocationQuery must be created via NewGetDeliveryLocationQuery constructor",
)

// GetDeliveryLocationQuery retrieves the tracking view of a delivery: its
// tracking code and the courier's last reported position. This is the read
// model behind the client-facing "where is my order" screen.
type GetDeliveryLocationQuery struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryLocationQuery creates a query to retrieve a delivery's position.
// Returns an error when the identifier is invalid.
func NewGetDeliveryLocationQuery(deliveryID kernel.UUID) (GetDeliveryLocationQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryLocationQuery{}, err
	}

	return GetDeliveryLocationQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryLocationQueryIsNotConstructed if validation fails.
func (q GetDeliveryLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryLocationQueryIsNotConstructed)
}

// DeliveryID returns the identifier of the requested delivery.
func (q GetDeliveryLocationQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// GetDeliveryLocationQueryResponse represents a delivery's tracking view.
// Location is nil until the courier reports a position; UpdatedAt is the
// time of the last report.
type GetDeliveryLocationQueryResponse struct {
	TrackingCode string
	Location     *GetDeliveryLocationResponse
	UpdatedAt    time.Time
}
