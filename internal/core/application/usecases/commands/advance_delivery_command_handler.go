package commands

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
)

// AdvanceDeliveryCommandHandler moves an order's delivery status forward on
// behalf of the assigned courier. Reaching Delivered triggers the order's
// completion effects inside the aggregate and a buyer notification after
// commit.
type AdvanceDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
	logger     *slog.Logger
}

// NewAdvanceDeliveryCommandHandler creates a handler for delivery advances.
func NewAdvanceDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	logger *slog.Logger,
) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "advance_delivery_handler"),
	}
}

// Handle processes the delivery-advance command.
func (h *AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) error {
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

	if err := o.AdvanceDelivery(cmd.Next(), cmd.Actor()); err != nil {
		return err
	}

	if err := orders.Update(ctx, o); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if o.DeliveryStatus() == order.DeliveryDelivered {
		h.notifyBuyer(ctx, o)
	}
	return nil
}

func (h *AdvanceDeliveryCommandHandler) notifyBuyer(ctx context.Context, o *order.Order) {
	buyer, err := kernel.NewActor(o.BuyerID(), kernel.RoleBuyer)
	if err != nil {
		return
	}

	if _, err := h.notifier.Notify(ctx, buyer, notification.TypeOrderDelivered,
		"Order delivered",
		fmt.Sprintf("Order %s has been delivered", o.Number()),
		map[string]string{"orderId": o.ID().String()},
		notification.PriorityNormal); err != nil {
		h.logger.WarnContext(ctx, "buyer notification failed",
			"order_number", o.Number(), "error", err)
	}
}
