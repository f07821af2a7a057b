// Package deliveryrepo provides data transfer objects and mapping functions for
// delivery persistence, including the append-only location history log.
// Unique indexes guarantee one delivery per order and globally unique
// tracking codes.
package deliveryrepo

import (
	"time"

	"goby/internal/core/domain/model/delivery"
	"goby/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// The current position is nullable: it stays empty until the courier's first report.
type DeliveryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingCode string    `gorm:"type:varchar(8);uniqueIndex"`
	CourierID    uuid.UUID `gorm:"type:uuid;index"`
	ClientID     uuid.UUID `gorm:"type:uuid;index"`
	OrderID      uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CurrentLat   *float64
	CurrentLon   *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// LocationHistoryDTO represents a single archived courier position report.
// Rows are append-only and written in batches by the history flush job.
type LocationHistoryDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index"`
	Lat        float64
	Lon        float64
	RecordedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for location history entities.
func (LocationHistoryDTO) TableName() string {
	return "location_history"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:           aggregate.ID().Bytes(),
		TrackingCode: aggregate.TrackingCode(),
		CourierID:    aggregate.CourierID().Bytes(),
		ClientID:     aggregate.ClientID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
	}

	if current := aggregate.CurrentLocation(); current != nil {
		lat := current.Latitude()
		lon := current.Longitude()
		dto.CurrentLat = &lat
		dto.CurrentLon = &lon
	}

	return dto
}

// toDomain converts a database DTO to a delivery domain aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var current *kernel.GeoPoint
	if dto.CurrentLat != nil && dto.CurrentLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.CurrentLat, *dto.CurrentLon)
		if pointErr != nil {
			return nil, pointErr
		}
		current = &point
	}

	return delivery.RestoreDelivery(id, dto.TrackingCode, courierID, clientID, orderID, current)
}
