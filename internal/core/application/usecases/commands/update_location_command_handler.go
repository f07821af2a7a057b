package commands

import (
	"context"
	"time"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/core/ports"
)

// LocationUpdateResult describes a delivery's position after a courier report.
type LocationUpdateResult struct {
	TrackingCode string
	Location     kernel.GeoPoint
	UpdatedAt    time.Time
}

// UpdateLocationCommandHandler persists a courier position report.
// Updates the delivery's current location transactionally and hands the
// sample to the location recorder for best-effort history persistence.
type UpdateLocationCommandHandler struct {
	uowFactory DeliveryUoWFactory
	recorder   ports.LocationRecorder
}

// NewUpdateLocationCommandHandler creates a handler for position reports.
// Requires a DeliveryUoWFactory for the transactional location update and a
// LocationRecorder for the history trail.
func NewUpdateLocationCommandHandler(
	uowFactory DeliveryUoWFactory,
	recorder ports.LocationRecorder,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle processes the update-location command.
// The current location is the authoritative write; the history sample is
// recorded only after a successful commit and never fails the request.
// Returns a Forbidden error when the courier does not own the delivery.
func (h UpdateLocationCommandHandler) Handle(ctx context.Context, command UpdateLocationCommand) (LocationUpdateResult, error) {
	if err := command.Validate(); err != nil {
		return LocationUpdateResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LocationUpdateResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveriesRepo := uow.DeliveryRepository()

	currentDelivery, err := deliveriesRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return LocationUpdateResult{}, err
	}

	if err = currentDelivery.EnsureOwnedBy(command.CourierID()); err != nil {
		return LocationUpdateResult{}, err
	}

	if err = currentDelivery.MoveTo(command.Location()); err != nil {
		return LocationUpdateResult{}, err
	}

	if err = deliveriesRepo.Update(ctx, currentDelivery); err != nil {
		return LocationUpdateResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return LocationUpdateResult{}, err
	}

	recordedAt := time.Now().UTC()
	h.recorder.Record(ports.LocationSample{
		DeliveryID: command.DeliveryID(),
		Location:   command.Location(),
		RecordedAt: recordedAt,
	})

	return LocationUpdateResult{
		TrackingCode: currentDelivery.TrackingCode(),
		Location:     command.Location(),
		UpdatedAt:    recordedAt,
	}, nil
}
