package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrMarkAllNotificationsReadCommandIsNotConstructed = errors.New(
	"MarkAllNotificationsReadCommand must be created via NewMarkAllNotificationsReadCommand constructor",
)

// MarkAllNotificationsReadCommand represents a recipient clearing their
// whole unread badge at once.
type MarkAllNotificationsReadCommand struct { //nolint:recvcheck //using for validation
	actor kernel.Actor

	guard guard.ConstructorGuard
}

// NewMarkAllNotificationsReadCommand creates a validated mark-all-read command.
func NewMarkAllNotificationsReadCommand(actor kernel.Actor) (MarkAllNotificationsReadCommand, error) {
	if err := actor.Validate(); err != nil {
		return MarkAllNotificationsReadCommand{}, err
	}

	return MarkAllNotificationsReadCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkAllNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllNotificationsReadCommandIsNotConstructed)
}

// Actor returns the recipient whose notifications are being marked read.
func (c MarkAllNotificationsReadCommand) Actor() kernel.Actor {
	return c.actor
}
