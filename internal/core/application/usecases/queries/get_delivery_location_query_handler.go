package queries

import (
	"context"
	"database/sql"
	"errors"

	"goby/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryLocationQueryHandler retrieves delivery tracking views from the database.
type GetDeliveryLocationQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryLocationQueryHandler creates a handler for tracking queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryLocationQueryHandler(db *gorm.DB) GetDeliveryLocationQueryHandler {
	return GetDeliveryLocationQueryHandler{db: db}
}

// Handle executes the query to retrieve a delivery's tracking view.
// Returns an ObjectNotFound error when the delivery does not exist.
func (h GetDeliveryLocationQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryLocationQuery,
) (GetDeliveryLocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryLocationQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_code,
			current_lat,
			current_lon,
			updated_at
		FROM deliveries
		WHERE id = ?
	`, query.DeliveryID().String()).Row()

	var response GetDeliveryLocationQueryResponse
	var lat, lon sql.NullFloat64

	err := row.Scan(
		&response.TrackingCode,
		&lat,
		&lon,
		&response.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDeliveryLocationQueryResponse{}, errs.NewObjectNotFoundError("deliveryID", query.DeliveryID())
	}
	if err != nil {
		return GetDeliveryLocationQueryResponse{}, err
	}

	if lat.Valid && lon.Valid {
		response.Location = &GetDeliveryLocationResponse{
			Latitude:  lat.Float64,
			Longitude: lon.Float64,
		}
	}

	return response, nil
}
