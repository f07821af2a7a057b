package commands

import (
	"context"

	"goby/internal/core/domain/model/delivery"
	"goby/internal/core/domain/model/kernel"
	"goby/internal/core/domain/model/order"
)

// DeliveryResult describes the state of a delivery after a courier report.
type DeliveryResult struct {
	DeliveryID   kernel.UUID
	TrackingCode string
	CourierID    kernel.UUID
	ClientID     kernel.UUID
	OrderID      kernel.UUID
	OrderStatus  order.Status
	Location     *kernel.GeoPoint
}

func newDeliveryResult(d *delivery.Delivery, status order.Status) DeliveryResult {
	return DeliveryResult{
		DeliveryID:   d.ID(),
		TrackingCode: d.TrackingCode(),
		CourierID:    d.CourierID(),
		ClientID:     d.ClientID(),
		OrderID:      d.OrderID(),
		OrderStatus:  status,
		Location:     d.CurrentLocation(),
	}
}

// ArriveAtRestaurantCommandHandler advances a delivery to the delivering stage.
// Verifies the reporting courier owns the delivery, then flips the order from
// taken to delivering and updates the delivery's position, all in one
// transaction.
type ArriveAtRestaurantCommandHandler struct {
	uowFactory OrderDeliveryUoWFactory
}

// NewArriveAtRestaurantCommandHandler creates a handler for pickup reports.
// Requires an OrderDeliveryUoWFactory for coordinating transactional updates
// across the order and delivery repositories.
func NewArriveAtRestaurantCommandHandler(uowFactory OrderDeliveryUoWFactory) ArriveAtRestaurantCommandHandler {
	return ArriveAtRestaurantCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the arrive-at-restaurant command.
// Returns a Forbidden error when the courier does not own the delivery and a
// StateIsInvalid error when the order is not in the taken status.
func (h ArriveAtRestaurantCommandHandler) Handle(ctx context.Context, command ArriveAtRestaurantCommand) (DeliveryResult, error) {
	if err := command.Validate(); err != nil {
		return DeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveriesRepo := uow.DeliveryRepository()
	ordersRepo := uow.OrderRepository()

	currentDelivery, err := deliveriesRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return DeliveryResult{}, err
	}

	if err = currentDelivery.EnsureOwnedBy(command.CourierID()); err != nil {
		return DeliveryResult{}, err
	}

	ord, err := ordersRepo.GetForUpdate(ctx, currentDelivery.OrderID())
	if err != nil {
		return DeliveryResult{}, err
	}

	if err = ord.StartDelivering(); err != nil {
		return DeliveryResult{}, err
	}

	if err = currentDelivery.MoveTo(command.Location()); err != nil {
		return DeliveryResult{}, err
	}

	if err = ordersRepo.Update(ctx, ord); err != nil {
		return DeliveryResult{}, err
	}

	if err = deliveriesRepo.Update(ctx, currentDelivery); err != nil {
		return DeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DeliveryResult{}, err
	}

	return newDeliveryResult(currentDelivery, ord.Status()), nil
}
