package commands_test

import (
	"testing"

	"goby/internal/core/application/usecases/commands"
	"goby/internal/core/domain/model/delivery"
	"goby/internal/core/domain/model/kernel"
	"goby/internal/core/domain/model/order"
	"goby/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTakeOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	ord := newPendingOrder(t, "120.00")
	balance := newBalance(t, courierID, "150.00")
	cmd, _ := commands.NewTakeOrderCommand(ord.ID(), courierID, newGeoPoint(t, 55.75, 37.62))

	ordersRepo := new(MockOrderRepository)
	creditsRepo := new(MockCreditsRepository)
	deliveriesRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("CreditsRepository").Return(creditsRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
		ordersRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		creditsRepo.On("GetByOwnerForUpdate", mock.Anything, courierID).Return(balance, nil).Once(),
		ordersRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		creditsRepo.On("Update", mock.Anything, balance).Return(nil).Once(),
		deliveriesRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Len(t, result.TrackingCode, delivery.TrackingCodeLength)
	assert.Equal(t, order.Taken, ord.Status())
	assert.Equal(t, "30", balance.Amount().String())
	ordersRepo.AssertExpectations(t)
	creditsRepo.AssertExpectations(t)
	deliveriesRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTakeOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.TakeOrderCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewTakeOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestTakeOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewTakeOrderCommand(orderID, courierID, newGeoPoint(t, 55.75, 37.62))

	ordersRepo := new(MockOrderRepository)
	creditsRepo := new(MockCreditsRepository)
	deliveriesRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("CreditsRepository").Return(creditsRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
		ordersRepo.On("GetForUpdate", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestTakeOrderCommandHandler_Handle_OrderAlreadyTaken(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	ord := newOrderInStatus(t, "120.00", order.Taken)
	balance := newBalance(t, courierID, "500.00")
	cmd, _ := commands.NewTakeOrderCommand(ord.ID(), courierID, newGeoPoint(t, 55.75, 37.62))

	ordersRepo := new(MockOrderRepository)
	creditsRepo := new(MockCreditsRepository)
	deliveriesRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("CreditsRepository").Return(creditsRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
		ordersRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		creditsRepo.On("GetByOwnerForUpdate", mock.Anything, courierID).Return(balance, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStateIsInvalid)
	assert.Equal(t, "500", balance.Amount().String())
	uow.AssertExpectations(t)
}

func TestTakeOrderCommandHandler_Handle_InsufficientFundsOnFreshBalance(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	ord := newPendingOrder(t, "120.00")
	cmd, _ := commands.NewTakeOrderCommand(ord.ID(), courierID, newGeoPoint(t, 55.75, 37.62))

	ordersRepo := new(MockOrderRepository)
	creditsRepo := new(MockCreditsRepository)
	deliveriesRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("CreditsRepository").Return(creditsRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
		ordersRepo.On("GetForUpdate", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		creditsRepo.On("GetByOwnerForUpdate", mock.Anything, courierID).
			Return(nil, errs.NewObjectNotFoundError("ownerID", courierID)).Once(),
		creditsRepo.On("Add", mock.Anything, mock.AnythingOfType("*credits.Balance")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
	assert.Equal(t, order.Pending, ord.Status())
	uow.AssertExpectations(t)
	creditsRepo.AssertExpectations(t)
}

func TestTakeOrderCommandHandler_Handle_TrackingCodeConflictRetried(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	firstOrder := newPendingOrder(t, "120.00")
	cmd, _ := commands.NewTakeOrderCommand(firstOrder.ID(), courierID, newGeoPoint(t, 55.75, 37.62))

	setupAttempt := func(ord *order.Order, addErr error) (*MockUoW, *MockOrderRepository, *MockCreditsRepository, *MockDeliveryRepository) {
		ordersRepo := new(MockOrderRepository)
		creditsRepo := new(MockCreditsRepository)
		deliveriesRepo := new(MockDeliveryRepository)
		uow := new(MockUoW)

		balance := newBalance(t, courierID, "150.00")
		calls := []*mock.Call{
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(ordersRepo).Once(),
			uow.On("CreditsRepository").Return(creditsRepo).Once(),
			uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
			ordersRepo.On("GetForUpdate", mock.Anything, cmd.OrderID()).Return(ord, nil).Once(),
			creditsRepo.On("GetByOwnerForUpdate", mock.Anything, courierID).Return(balance, nil).Once(),
			ordersRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
			creditsRepo.On("Update", mock.Anything, balance).Return(nil).Once(),
			deliveriesRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(addErr).Once(),
		}
		if addErr == nil {
			calls = append(calls, uow.On("Commit", ctx).Return(nil).Once())
		}
		calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
		mock.InOrder(calls...)
		return uow, ordersRepo, creditsRepo, deliveriesRepo
	}

	secondOrder := newPendingOrder(t, "120.00")
	conflictUoW, _, _, _ := setupAttempt(firstOrder, errs.NewConflictError("trackingCode"))
	successUoW, _, _, _ := setupAttempt(secondOrder, nil)

	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(conflictUoW).Once(),
		factory.On("Create").Return(successUoW).Once(),
	)

	h := commands.NewTakeOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Len(t, result.TrackingCode, delivery.TrackingCodeLength)
	conflictUoW.AssertExpectations(t)
	successUoW.AssertExpectations(t)
	factory.AssertExpectations(t)
}
