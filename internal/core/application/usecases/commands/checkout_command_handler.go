package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/ordernum"
)

// LowStockThreshold is the remaining-stock level at or below which a seller
// gets a low-stock notification after checkout.
const LowStockThreshold = 5

// maxNumberAttempts bounds the generate-and-insert retry loop for order
// numbers. Collisions require two orders in the same millisecond drawing the
// same suffix, so one retry is already rare and three exhaust the realistic
// collision budget.
const maxNumberAttempts = 3

// CheckoutCommandHandler handles order placement. It persists the order and
// the stock decrements in one transaction, then fans out notifications and
// the confirmation email as best-effort side effects.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	numbers    *ordernum.Generator
	notifier   Notifier
	mailer     ports.Mailer
	adminID    kernel.UUID
	logger     *slog.Logger
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
// adminID identifies the marketplace operator who receives a copy of every
// new-order notification.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	numbers *ordernum.Generator,
	notifier Notifier,
	mailer ports.Mailer,
	adminID kernel.UUID,
	logger *slog.Logger,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
		notifier:   notifier,
		mailer:     mailer,
		adminID:    adminID,
		logger:     logger.With("component", "checkout_handler"),
	}
}

// Handle processes the checkout command. The order number is generated fresh
// on every insert attempt; a uniqueness violation regenerates and retries up
// to maxNumberAttempts before surfacing a duplicate-identifier error.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
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

	placed, err := h.insertWithFreshNumber(ctx, uow, cmd)
	if err != nil {
		return err
	}

	lowStock, err := h.decrementStock(ctx, uow.ProductRepository(), cmd.Items())
	if err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.fanOut(ctx, cmd, placed, lowStock)
	return nil
}

// orderInsertSavepoint guards each insert attempt. A failed INSERT aborts
// the whole transaction on PostgreSQL, so the loop must roll back to this
// savepoint before it can retry with a fresh number.
const orderInsertSavepoint = "order_insert"

// insertWithFreshNumber builds and inserts the order, regenerating the
// number on a uniqueness collision.
func (h *CheckoutCommandHandler) insertWithFreshNumber(
	ctx context.Context,
	uow CheckoutUoW,
	cmd CheckoutCommand,
) (*order.Order, error) {
	if err := uow.SavePoint(ctx, orderInsertSavepoint); err != nil {
		return nil, err
	}

	orders := uow.OrderRepository()

	var lastErr error
	var lastNumber string

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		lastNumber = h.numbers.Next()

		placed, err := order.NewOrder(cmd.OrderID(), lastNumber, cmd.BuyerID(),
			cmd.Items(), cmd.DeliveryFee(), cmd.Address(),
			cmd.PaymentMethod(), cmd.SpecialInstructions())
		if err != nil {
			return nil, err
		}

		err = orders.Add(ctx, placed)
		if err == nil {
			return placed, nil
		}
		if !errors.Is(err, errs.ErrDuplicateIdentifier) {
			return nil, err
		}
		if rbErr := uow.RollbackTo(ctx, orderInsertSavepoint); rbErr != nil {
			return nil, rbErr
		}

		lastErr = err
		h.logger.WarnContext(ctx, "order number collision, regenerating",
			"number", lastNumber, "attempt", attempt+1)
	}

	return nil, errs.NewDuplicateIdentifierErrorWithCause(lastNumber, maxNumberAttempts, lastErr)
}

// decrementStock reduces stock for every item and collects the products
// that ended at or below the low-stock threshold.
func (h *CheckoutCommandHandler) decrementStock(
	ctx context.Context,
	products ports.ProductRepository,
	items []order.Item,
) ([]ports.ProductStock, error) {
	var lowStock []ports.ProductStock

	for _, item := range items {
		stock, err := products.DecrementStock(ctx, item.ProductID(), item.Quantity())
		if err != nil {
			return nil, err
		}
		if stock.Remaining <= LowStockThreshold {
			lowStock = append(lowStock, stock)
		}
	}

	return lowStock, nil
}

// fanOut sends the post-commit side effects. Every failure here is logged
// and swallowed: the order is already placed.
func (h *CheckoutCommandHandler) fanOut(
	ctx context.Context,
	cmd CheckoutCommand,
	placed *order.Order,
	lowStock []ports.ProductStock,
) {
	data := map[string]string{
		"orderId":     placed.ID().String(),
		"orderNumber": placed.Number(),
	}

	for _, sellerID := range placed.Sellers() {
		seller, err := kernel.NewActor(sellerID, kernel.RoleSeller)
		if err != nil {
			continue
		}
		h.notify(ctx, seller, notification.TypeNewOrder, "New order received",
			fmt.Sprintf("Order %s contains items from your shop", placed.Number()),
			data, notification.PriorityNormal)
	}

	if admin, err := kernel.NewActor(h.adminID, kernel.RoleAdmin); err == nil {
		h.notify(ctx, admin, notification.TypeNewOrder, "New order placed",
			fmt.Sprintf("Order %s was placed", placed.Number()),
			data, notification.PriorityNormal)
	}

	for _, stock := range lowStock {
		seller, err := kernel.NewActor(stock.SellerID, kernel.RoleSeller)
		if err != nil {
			continue
		}
		h.notify(ctx, seller, notification.TypeLowStock, "Low stock",
			fmt.Sprintf("%s has %d left in stock", stock.Name, stock.Remaining),
			map[string]string{"productId": stock.ProductID.String()},
			notification.PriorityHigh)
	}

	if cmd.BuyerEmail() != "" {
		if err := h.mailer.Send(ctx, cmd.BuyerEmail(), "Order confirmation",
			fmt.Sprintf("Your order %s has been placed.", placed.Number())); err != nil {
			h.logger.WarnContext(ctx, "confirmation email failed",
				"order_number", placed.Number(), "error", err)
		}
	}
}

func (h *CheckoutCommandHandler) notify(
	ctx context.Context,
	recipient kernel.Actor,
	notificationType notification.Type,
	title, message string,
	data map[string]string,
	priority notification.Priority,
) {
	if _, err := h.notifier.Notify(ctx, recipient, notificationType,
		title, message, data, priority); err != nil {
		h.logger.WarnContext(ctx, "notification dispatch failed",
			"type", notificationType.String(), "recipient", recipient.String(), "error", err)
	}
}
