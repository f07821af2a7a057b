package ports

import (
	"context"
	"time"

	"goby/internal/core/domain/model/kernel"
)

// LocationSample is a single courier position report destined for the
// location history log.
type LocationSample struct {
	DeliveryID kernel.UUID
	Location   kernel.GeoPoint
	RecordedAt time.Time
}

// LocationHistoryWriter persists batches of position samples to the
// append-only history log.
type LocationHistoryWriter interface {
	Append(ctx context.Context, samples []LocationSample) error
}

// LocationRecorder accepts position samples for asynchronous persistence.
// Record never blocks the caller and never fails: history appends are
// best-effort and must not affect the outcome of the operation that
// produced the sample.
type LocationRecorder interface {
	Record(sample LocationSample)
}
