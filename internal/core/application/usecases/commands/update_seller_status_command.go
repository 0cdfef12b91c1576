package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateSellerStatusCommandIsNotConstructed = errors.New(
	"UpdateSellerStatusCommand must be created via NewUpdateSellerStatusCommand constructor",
)

// UpdateSellerStatusCommand represents a seller (or admin) advancing one
// seller's fulfillment entry on an order.
type UpdateSellerStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	sellerID kernel.UUID
	next     order.SellerStatus
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

// NewUpdateSellerStatusCommand creates a validated seller-status command.
func NewUpdateSellerStatusCommand(
	orderID kernel.UUID,
	sellerID kernel.UUID,
	next order.SellerStatus,
	actor kernel.Actor,
) (UpdateSellerStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		sellerID.Validate(),
		next.Validate(),
		actor.Validate(),
	); err != nil {
		return UpdateSellerStatusCommand{}, err
	}

	return UpdateSellerStatusCommand{
		orderID:  orderID,
		sellerID: sellerID,
		next:     next,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateSellerStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSellerStatusCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c UpdateSellerStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SellerID returns the seller whose entry is being advanced.
func (c UpdateSellerStatusCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// Next returns the requested seller status.
func (c UpdateSellerStatusCommand) Next() order.SellerStatus {
	return c.next
}

// Actor returns who requested the change.
func (c UpdateSellerStatusCommand) Actor() kernel.Actor {
	return c.actor
}
