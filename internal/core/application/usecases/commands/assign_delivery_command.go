package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand represents an admin assigning a courier to an order.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates a validated assignment command.
func NewAssignDeliveryCommand(orderID, courierID kernel.UUID, actor kernel.Actor) (AssignDeliveryCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
		actor.Validate(),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return AssignDeliveryCommand{
		orderID:   orderID,
		courierID: courierID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AssignDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier being assigned.
func (c AssignDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Actor returns who requested the assignment.
func (c AssignDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}
