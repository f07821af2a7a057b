package deliveryrepo

import (
	"context"

	"goby/internal/core/ports"

	"gorm.io/gorm"
)

// GormLocationHistoryWriter persists batches of archived position reports.
// Used by the history flush job; writes happen outside any business
// transaction.
type GormLocationHistoryWriter struct {
	db *gorm.DB
}

// NewGormLocationHistoryWriter creates a writer for the location history log.
func NewGormLocationHistoryWriter(db *gorm.DB) *GormLocationHistoryWriter {
	return &GormLocationHistoryWriter{db: db}
}

// Append inserts the given samples as history rows in a single batch.
func (w *GormLocationHistoryWriter) Append(ctx context.Context, samples []ports.LocationSample) error {
	if len(samples) == 0 {
		return nil
	}

	dtos := make([]LocationHistoryDTO, 0, len(samples))
	for _, sample := range samples {
		dtos = append(dtos, LocationHistoryDTO{
			DeliveryID: sample.DeliveryID.Bytes(),
			Lat:        sample.Location.Latitude(),
			Lon:        sample.Location.Longitude(),
			RecordedAt: sample.RecordedAt,
		})
	}

	return w.db.WithContext(ctx).Create(&dtos).Error
}
