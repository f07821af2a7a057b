package commands

import (
	"context"
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/core/domain/services"
	"goby/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// maxTrackingCodeAttempts bounds how many times a take is retried when the
// generated tracking code collides with an existing one.
const maxTrackingCodeAttempts = 3

// TakeOrderResult describes the delivery created by a successful take.
type TakeOrderResult struct {
	DeliveryID   kernel.UUID
	TrackingCode string
}

// TakeOrderCommandHandler orchestrates the take-order workflow.
// Locks the order and the courier's balance, debits the order total, flips the
// order to taken and creates a delivery, all within a single transaction, so
// a concurrent take of the same order leaves exactly one winner.
//
// Example:
//
//	handler := NewTakeOrderCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrStateIsInvalid):
//	    log.Println("Order is no longer available")
//	case errors.Is(err, errs.ErrInsufficientFunds):
//	    log.Println("Not enough credits")
//	case err != nil:
//	    log.Printf("Take failed: %v", err)
//	default:
//	    log.Printf("Delivery %s created", result.TrackingCode)
//	}
type TakeOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewTakeOrderCommandHandler creates a handler for take-order operations.
// Requires a UoWFactory for coordinating transactional updates across the
// order, credits and delivery repositories.
func NewTakeOrderCommandHandler(uowFactory UoWFactory) TakeOrderCommandHandler {
	return TakeOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the take-order command.
// The whole workflow runs under row locks on the order and the balance:
// the losing side of a concurrent take re-reads the order after the winner
// commits and fails with a StateIsInvalid error. A tracking code collision
// aborts the transaction and the take is retried from scratch with a fresh
// code, up to maxTrackingCodeAttempts times.
func (h TakeOrderCommandHandler) Handle(ctx context.Context, command TakeOrderCommand) (TakeOrderResult, error) {
	if err := command.Validate(); err != nil {
		return TakeOrderResult{}, err
	}

	var result TakeOrderResult
	var err error
	for attempt := 0; attempt < maxTrackingCodeAttempts; attempt++ {
		result, err = h.take(ctx, command)
		if err == nil || !errors.Is(err, errs.ErrConflict) {
			return result, err
		}
	}

	return TakeOrderResult{}, err
}

func (h TakeOrderCommandHandler) take(ctx context.Context, command TakeOrderCommand) (TakeOrderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TakeOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	creditsRepo := uow.CreditsRepository()
	deliveriesRepo := uow.DeliveryRepository()

	ord, err := ordersRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return TakeOrderResult{}, err
	}

	balance, _, err := getOrCreateBalance(ctx, creditsRepo, command.CourierID(), decimal.Zero)
	if err != nil {
		return TakeOrderResult{}, err
	}

	newDelivery, err := services.NewDeliveryAssigner().Assign(
		ord, balance, command.CourierID(), command.Location())
	if err != nil {
		return TakeOrderResult{}, err
	}

	if err = ordersRepo.Update(ctx, ord); err != nil {
		return TakeOrderResult{}, err
	}

	if err = creditsRepo.Update(ctx, balance); err != nil {
		return TakeOrderResult{}, err
	}

	if err = deliveriesRepo.Add(ctx, newDelivery); err != nil {
		return TakeOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TakeOrderResult{}, err
	}

	return TakeOrderResult{
		DeliveryID:   newDelivery.ID(),
		TrackingCode: newDelivery.TrackingCode(),
	}, nil
}
