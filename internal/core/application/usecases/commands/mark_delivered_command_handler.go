package commands

import (
	"context"
)

// MarkDeliveredCommandHandler completes an order through its delivery.
// Verifies the reporting courier owns the delivery, then flips the order from
// delivering to completed.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderDeliveryUoWFactory
}

// NewMarkDeliveredCommandHandler creates a handler for delivery completion reports.
// Requires an OrderDeliveryUoWFactory for coordinating transactional updates
// across the order and delivery repositories.
func NewMarkDeliveredCommandHandler(uowFactory OrderDeliveryUoWFactory) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-delivered command.
// Returns a Forbidden error when the courier does not own the delivery and a
// StateIsInvalid error when the order is not in the delivering status.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, command MarkDeliveredCommand) (DeliveryResult, error) {
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

	if err = ord.Complete(); err != nil {
		return DeliveryResult{}, err
	}

	if err = ordersRepo.Update(ctx, ord); err != nil {
		return DeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DeliveryResult{}, err
	}

	return newDeliveryResult(currentDelivery, ord.Status()), nil
}
