package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand represents the assigned courier moving an order's
// delivery status one step forward.
type AdvanceDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	next    order.DeliveryStatus
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryCommand creates a validated delivery-advance command.
func NewAdvanceDeliveryCommand(orderID kernel.UUID, next order.DeliveryStatus, actor kernel.Actor) (AdvanceDeliveryCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		next.Validate(),
		actor.Validate(),
	); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	return AdvanceDeliveryCommand{
		orderID: orderID,
		next:    next,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AdvanceDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Next returns the requested delivery status.
func (c AdvanceDeliveryCommand) Next() order.DeliveryStatus {
	return c.next
}

// Actor returns the courier requesting the advance.
func (c AdvanceDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}
