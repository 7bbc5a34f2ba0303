package commands_test

import (
	"context"
	"testing"
	"time"

	"coldchain/internal/core/application/usecases/commands"
	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/core/domain/model/order"
	"coldchain/internal/core/domain/model/route"
	"coldchain/internal/core/ports"
	"coldchain/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockDeliveryUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockDeliveryUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

func newAssignedDelivery(t *testing.T, driverID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	require.NoError(t, d.Assign(driverID, kernel.NewUUID()))
	return d
}

func newReadyOrderFor(t *testing.T, d *delivery.Delivery) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(d.OrderID(), "SO-2001", "Glacier Deli", 99.90, order.Ready)
	require.NoError(t, err)
	return o
}

func TestStartDeliveryCommandHandler_Handle_Standalone(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	d := newAssignedDelivery(t, driverID)
	o := newReadyOrderFor(t, d)

	cmd, err := commands.NewStartDeliveryCommand(d.ID(), driverID)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockDeliveryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once(),
		deliveryRepo.On("Update", ctx, d).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, d.OrderID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.InTransit, d.Status())
	assert.Equal(t, order.Shipped, o.Status())
	uow.AssertNotCalled(t, "RouteRepository")
}

func TestStartDeliveryCommandHandler_Handle_RouteBoundStartsRoute(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	d := newAssignedDelivery(t, driverID)

	stop, err := route.NewStop(kernel.NewUUID(), kernel.NewUUID(), d.ID(), 1)
	require.NoError(t, err)
	testRoute, err := route.NewRoute(kernel.NewUUID(), driverID, kernel.NewUUID(), []*route.Stop{stop})
	require.NoError(t, err)
	require.NoError(t, d.BindToStop(stop.ID()))
	o := newReadyOrderFor(t, d)

	cmd, err := commands.NewStartDeliveryCommand(d.ID(), driverID)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	orderRepo := new(MockOrderRepository)
	routeRepo := new(MockRouteRepository)
	uow := new(MockDeliveryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once(),
		deliveryRepo.On("Update", ctx, d).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, d.OrderID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("GetForUpdateByStopID", ctx, stop.ID()).Return(testRoute, nil).Once(),
		routeRepo.On("Update", ctx, testRoute).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.InTransit, d.Status())
	assert.Equal(t, order.Shipped, o.Status())
	assert.Equal(t, route.InProgress, testRoute.Status())
	assert.Equal(t, route.EnRoute, stop.Status())
}

func TestStartDeliveryCommandHandler_Handle_WrongDriverForbidden(t *testing.T) {
	ctx := t.Context()
	d := newAssignedDelivery(t, kernel.NewUUID())

	cmd, err := commands.NewStartDeliveryCommand(d.ID(), kernel.NewUUID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotPermitted)
	assert.Equal(t, delivery.Pending, d.Status())
}

func TestStartDeliveryCommandHandler_Handle_AlreadyInTransitConflicts(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	d := newAssignedDelivery(t, driverID)
	require.NoError(t, d.Start())

	cmd, err := commands.NewStartDeliveryCommand(d.ID(), driverID)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewStartDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestStartDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.StartDeliveryCommand{} // not constructed properly

	factory := new(MockDeliveryUoWFactory)
	handler := commands.NewStartDeliveryCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrStartDeliveryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
