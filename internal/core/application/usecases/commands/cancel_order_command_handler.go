package commands

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
)

// CancelOrderCommandHandler cancels an order and informs the buyer.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier Notifier,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "cancel_order_handler"),
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err := o.Cancel(cmd.Actor()); err != nil {
		return err
	}

	if err := orders.Update(ctx, o); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if buyer, err := kernel.NewActor(o.BuyerID(), kernel.RoleBuyer); err == nil {
		if _, err := h.notifier.Notify(ctx, buyer, notification.TypeOrderStatusUpdated,
			"Order cancelled",
			fmt.Sprintf("Order %s has been cancelled", o.Number()),
			map[string]string{"orderId": o.ID().String()},
			notification.PriorityNormal); err != nil {
			h.logger.WarnContext(ctx, "buyer notification failed",
				"order_number", o.Number(), "error", err)
		}
	}
	return nil
}
