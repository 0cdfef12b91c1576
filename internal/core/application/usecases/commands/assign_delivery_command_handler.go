package commands

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
)

// AssignDeliveryCommandHandler assigns a courier to an order and notifies
// the courier about the new assignment.
type AssignDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
	logger     *slog.Logger
}

// NewAssignDeliveryCommandHandler creates a handler for courier assignment.
func NewAssignDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	logger *slog.Logger,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "assign_delivery_handler"),
	}
}

// Handle processes the assignment command.
func (h *AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err := o.AssignDeliveryPerson(cmd.CourierID(), cmd.Actor()); err != nil {
		return err
	}

	if err := orders.Update(ctx, o); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if courier, err := kernel.NewActor(cmd.CourierID(), kernel.RoleDelivery); err == nil {
		if _, err := h.notifier.Notify(ctx, courier, notification.TypeDeliveryAssigned,
			"Delivery assigned",
			fmt.Sprintf("Order %s is assigned to you", o.Number()),
			map[string]string{"orderId": o.ID().String()},
			notification.PriorityNormal); err != nil {
			h.logger.WarnContext(ctx, "courier notification failed",
				"order_number", o.Number(), "error", err)
		}
	}
	return nil
}
