package commands_test

import (
	"context"
	"testing"

	"goby/internal/core/application/usecases/commands"
	"goby/internal/core/domain/model/credits"
	"goby/internal/core/domain/model/delivery"
	"goby/internal/core/domain/model/kernel"
	"goby/internal/core/domain/model/order"
	"goby/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*delivery.Delivery); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCreditsRepository struct{ mock.Mock }

func (m *MockCreditsRepository) Add(ctx context.Context, b *credits.Balance) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockCreditsRepository) Update(ctx context.Context, b *credits.Balance) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockCreditsRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*credits.Balance, error) {
	args := m.Called(ctx, ownerID)
	if b, ok := args.Get(0).(*credits.Balance); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditsRepository) GetByOwnerForUpdate(ctx context.Context, ownerID kernel.UUID) (*credits.Balance, error) {
	args := m.Called(ctx, ownerID)
	if b, ok := args.Get(0).(*credits.Balance); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUoW satisfies every unit of work composition used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) CreditsRepository() ports.CreditsRepository {
	args := m.Called()
	return args.Get(0).(ports.CreditsRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderDeliveryUoWFactory struct{ mock.Mock }

func (m *MockOrderDeliveryUoWFactory) Create() commands.OrderDeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderDeliveryUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockCreditsUoWFactory struct{ mock.Mock }

func (m *MockCreditsUoWFactory) Create() commands.CreditsUoW {
	args := m.Called()
	return args.Get(0).(commands.CreditsUoW)
}

// MockLocationRecorder captures history samples handed off by handlers.
type MockLocationRecorder struct {
	samples []ports.LocationSample
}

func (m *MockLocationRecorder) Record(sample ports.LocationSample) {
	m.samples = append(m.samples, sample)
}

func newPendingOrder(t *testing.T, total string) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), decimal.RequireFromString(total), 1)
	require.NoError(t, err)

	ord, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []order.Item{item})
	require.NoError(t, err)
	return ord
}

func newOrderInStatus(t *testing.T, total string, status order.Status) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), decimal.RequireFromString(total), 1)
	require.NoError(t, err)

	ord, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, status)
	require.NoError(t, err)
	return ord
}

func newBalance(t *testing.T, ownerID kernel.UUID, amount string) *credits.Balance {
	t.Helper()

	balance, err := credits.NewBalance(kernel.NewUUID(), ownerID, decimal.RequireFromString(amount))
	require.NoError(t, err)
	return balance
}

func newDeliveryFor(t *testing.T, courierID kernel.UUID, status order.Status) (*delivery.Delivery, *order.Order) {
	t.Helper()

	ord := newOrderInStatus(t, "100.00", status)
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), delivery.GenerateTrackingCode(), courierID, ord.ClientID(), ord.ID(), nil)
	require.NoError(t, err)
	return d, ord
}

func newGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()

	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}
