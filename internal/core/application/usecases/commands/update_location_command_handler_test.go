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

func TestUpdateLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	d, _ := newDeliveryFor(t, courierID, order.Delivering)
	point := newGeoPoint(t, 48.85, 2.35)
	cmd, _ := commands.NewUpdateLocationCommand(d.ID(), courierID, point)

	deliveriesRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
		deliveriesRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		deliveriesRepo.On("Update", mock.Anything, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockLocationRecorder)
	h := commands.NewUpdateLocationCommandHandler(factory, recorder)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, d.TrackingCode(), result.TrackingCode)
	assert.False(t, result.UpdatedAt.IsZero())
	equal, err := point.IsEqual(result.Location)
	require.NoError(t, err)
	assert.True(t, equal)
	require.NotNil(t, d.CurrentLocation())
	equal, err = point.IsEqual(*d.CurrentLocation())
	require.NoError(t, err)
	assert.True(t, equal)
	require.Len(t, recorder.samples, 1)
	assert.Equal(t, d.ID(), recorder.samples[0].DeliveryID)
	equal, err = point.IsEqual(recorder.samples[0].Location)
	require.NoError(t, err)
	assert.True(t, equal)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateLocationCommandHandler_Handle_ForeignCourier(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	d, _ := newDeliveryFor(t, owner, order.Delivering)
	cmd, _ := commands.NewUpdateLocationCommand(d.ID(), kernel.NewUUID(), newGeoPoint(t, 0, 0))

	deliveriesRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
		deliveriesRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockLocationRecorder)
	h := commands.NewUpdateLocationCommandHandler(factory, recorder)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Empty(t, recorder.samples)
	uow.AssertExpectations(t)
}

func TestUpdateLocationCommandHandler_Handle_DeliveryNotFound(t *testing.T) {
	ctx := t.Context()
	deliveryID := kernel.NewUUID()
	cmd, _ := commands.NewUpdateLocationCommand(deliveryID, kernel.NewUUID(), newGeoPoint(t, 0, 0))

	deliveriesRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveriesRepo).Once(),
		deliveriesRepo.On("Get", mock.Anything, deliveryID).
			Return(nil, errs.NewObjectNotFoundError("deliveryID", deliveryID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := new(MockLocationRecorder)
	h := commands.NewUpdateLocationCommandHandler(factory, recorder)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, recorder.samples)
	uow.AssertExpectations(t)
}
