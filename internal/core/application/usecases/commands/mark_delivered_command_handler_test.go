package commands_test

import (
	"testing"

	"goby/internal/core/application/usecases/commands"
	"goby/internal/core/domain/model/kernel"
	"goby/internal/core/domain/model/order"
	"goby/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkDeliveredCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	d, ord := newDeliveryFor(t, courierID, order.Delivering)
	cmd, _ := commands.NewMarkDeliveredCommand(d.ID(), courierID)

	deliveriesRepo := new(MockDeliveryRepository)
	ordersRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		deliveriesRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		ordersRepo.On("GetForUpdate", mock.Anything, d.OrderID()).Return(ord, nil).Once(),
		ordersRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkDeliveredCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Completed, ord.Status())
	assert.Equal(t, d.ID(), result.DeliveryID)
	assert.Equal(t, d.TrackingCode(), result.TrackingCode)
	assert.Equal(t, order.Completed, result.OrderStatus)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestMarkDeliveredCommandHandler_Handle_NotYetDelivering(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	d, ord := newDeliveryFor(t, courierID, order.Taken)
	cmd, _ := commands.NewMarkDeliveredCommand(d.ID(), courierID)

	deliveriesRepo := new(MockDeliveryRepository)
	ordersRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		deliveriesRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		ordersRepo.On("GetForUpdate", mock.Anything, d.OrderID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkDeliveredCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStateIsInvalid)
	assert.Equal(t, order.Taken, ord.Status())
	uow.AssertExpectations(t)
}

func TestMarkDeliveredCommandHandler_Handle_ForeignCourier(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	d, _ := newDeliveryFor(t, owner, order.Delivering)
	cmd, _ := commands.NewMarkDeliveredCommand(d.ID(), kernel.NewUUID())

	deliveriesRepo := new(MockDeliveryRepository)
	ordersRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		deliveriesRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkDeliveredCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	uow.AssertExpectations(t)
}
