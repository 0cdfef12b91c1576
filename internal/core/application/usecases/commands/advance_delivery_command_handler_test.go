package commands_test

import (
	"context"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// assignedOrder returns an order with a courier assigned and the courier actor.
func assignedOrder(t *testing.T, buyerID kernel.UUID) (*order.Order, kernel.Actor) {
	t.Helper()
	o := placedOrder(t, buyerID, kernel.NewUUID())
	admin := actorOf(t, kernel.NewUUID(), kernel.RoleAdmin)
	courierID := kernel.NewUUID()
	require.NoError(t, o.AssignDeliveryPerson(courierID, admin))
	return o, actorOf(t, courierID, kernel.RoleDelivery)
}

func expectOrderMutation(ctx context.Context, o *order.Order) (*MockOrderRepository, *MockOrderUoW, *MockOrderUoWFactory) {
	orders := new(MockOrderRepository)
	orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	orders.On("Update", ctx, o).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return orders, uow, factory
}

func TestAdvanceDeliveryCommandHandler_Handle_IntermediateStep(t *testing.T) {
	ctx := t.Context()
	o, courier := assignedOrder(t, kernel.NewUUID())

	cmd, err := commands.NewAdvanceDeliveryCommand(o.ID(), order.DeliveryAccepted, courier)
	require.NoError(t, err)

	_, uow, factory := expectOrderMutation(ctx, o)

	notifier := new(MockNotifier)

	h := commands.NewAdvanceDeliveryCommandHandler(factory, notifier, testLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.DeliveryAccepted, o.DeliveryStatus())
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestAdvanceDeliveryCommandHandler_Handle_DeliveredNotifiesBuyer(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	o, courier := assignedOrder(t, buyerID)
	for _, step := range []order.DeliveryStatus{
		order.DeliveryAccepted, order.DeliveryPickedUp, order.DeliveryInTransit,
	} {
		require.NoError(t, o.AdvanceDelivery(step, courier))
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(o.ID(), order.DeliveryDelivered, courier)
	require.NoError(t, err)

	_, _, factory := expectOrderMutation(ctx, o)

	buyer := actorOf(t, buyerID, kernel.RoleBuyer)
	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, buyer, notification.TypeOrderDelivered,
		mock.Anything, mock.Anything, mock.Anything, notification.PriorityNormal).
		Return(nil, nil).Once()

	h := commands.NewAdvanceDeliveryCommandHandler(factory, notifier, testLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.DeliveryDelivered, o.DeliveryStatus())
	require.Equal(t, order.Delivered, o.Status())
	require.NotNil(t, o.DeliveredAt())
	notifier.AssertExpectations(t)
}

func TestAdvanceDeliveryCommandHandler_Handle_SkippedStepRejected(t *testing.T) {
	ctx := t.Context()
	o, courier := assignedOrder(t, kernel.NewUUID())

	cmd, err := commands.NewAdvanceDeliveryCommand(o.ID(), order.DeliveryInTransit, courier)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceDeliveryCommandHandler(factory, new(MockNotifier), testLogger())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Equal(t, order.DeliveryAssigned, o.DeliveryStatus())
}

func TestAdvanceDeliveryCommandHandler_Handle_WrongCourierRejected(t *testing.T) {
	ctx := t.Context()
	o, _ := assignedOrder(t, kernel.NewUUID())
	other := actorOf(t, kernel.NewUUID(), kernel.RoleDelivery)

	cmd, err := commands.NewAdvanceDeliveryCommand(o.ID(), order.DeliveryAccepted, other)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceDeliveryCommandHandler(factory, new(MockNotifier), testLogger())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
}
