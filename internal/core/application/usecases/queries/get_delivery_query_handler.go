package queries

import (
	"context"
	"database/sql"
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler retrieves delivery read models from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for delivery retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle executes the query to retrieve a single delivery.
// Joins the order row to expose the current order status alongside the
// delivery. Returns an ObjectNotFound error when the delivery does not exist.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.tracking_code,
			d.courier_id,
			d.client_id,
			d.order_id,
			o.status,
			d.current_lat,
			d.current_lon
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		WHERE d.id = ?
	`, query.DeliveryID().String()).Row()

	var response GetDeliveryQueryResponse
	var id, courierID, clientID, orderID uuid.UUID
	var lat, lon sql.NullFloat64

	err := row.Scan(
		&id,
		&response.TrackingCode,
		&courierID,
		&clientID,
		&orderID,
		&response.OrderStatus,
		&lat,
		&lon,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundError("deliveryID", query.DeliveryID())
	}
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if response.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if response.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if response.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	if lat.Valid && lon.Valid {
		response.Location = &GetDeliveryLocationResponse{
			Latitude:  lat.Float64,
			Longitude: lon.Float64,
		}
	}

	return response, nil
}
