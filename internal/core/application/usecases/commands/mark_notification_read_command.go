package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand represents a recipient marking one of their
// notifications as read.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

// NewMarkNotificationReadCommand creates a validated mark-read command.
func NewMarkNotificationReadCommand(notificationID kernel.UUID, actor kernel.Actor) (MarkNotificationReadCommand, error) {
	if err := errors.Join(notificationID.Validate(), actor.Validate()); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	return MarkNotificationReadCommand{
		notificationID: notificationID,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

// NotificationID returns the target notification's identifier.
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

// Actor returns who requested the change.
func (c MarkNotificationReadCommand) Actor() kernel.Actor {
	return c.actor
}
