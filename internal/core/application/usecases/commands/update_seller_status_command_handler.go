package commands

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/services"
)

// UpdateSellerStatusCommandHandler applies one seller's fulfillment change,
// then reconciles the overall status through the aggregation policy. The
// buyer is notified only when the overall status actually moved, never for
// an intermediate seller-only change.
type UpdateSellerStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	aggregator services.StatusAggregator
	notifier   Notifier
	logger     *slog.Logger
}

// NewUpdateSellerStatusCommandHandler creates a handler for seller-status updates.
func NewUpdateSellerStatusCommandHandler(
	uowFactory OrderUoWFactory,
	aggregator services.StatusAggregator,
	notifier Notifier,
	logger *slog.Logger,
) UpdateSellerStatusCommandHandler {
	return UpdateSellerStatusCommandHandler{
		uowFactory: uowFactory,
		aggregator: aggregator,
		notifier:   notifier,
		logger:     logger.With("component", "update_seller_status_handler"),
	}
}

// Handle processes the seller-status command.
func (h *UpdateSellerStatusCommandHandler) Handle(ctx context.Context, cmd UpdateSellerStatusCommand) error {
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

	if err := o.UpdateSellerStatus(cmd.SellerID(), cmd.Next(), cmd.Actor()); err != nil {
		return err
	}

	overallChanged, err := h.aggregator.Reconcile(o, cmd.Actor())
	if err != nil {
		return err
	}

	if err := orders.Update(ctx, o); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if overallChanged {
		h.notifyBuyer(ctx, o.BuyerID(), o.Number(), o.ID().String(), o.Status().String())
	}
	return nil
}

func (h *UpdateSellerStatusCommandHandler) notifyBuyer(ctx context.Context, buyerID kernel.UUID, number, orderID, status string) {
	buyer, err := kernel.NewActor(buyerID, kernel.RoleBuyer)
	if err != nil {
		return
	}

	if _, err := h.notifier.Notify(ctx, buyer, notification.TypeOrderStatusUpdated,
		"Order update",
		fmt.Sprintf("Order %s is now %s", number, status),
		map[string]string{"orderId": orderID, "status": status},
		notification.PriorityNormal); err != nil {
		h.logger.WarnContext(ctx, "buyer notification failed",
			"order_number", number, "error", err)
	}
}
