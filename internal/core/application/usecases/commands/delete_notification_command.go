package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrDeleteNotificationCommandIsNotConstructed = errors.New(
	"DeleteNotificationCommand must be created via NewDeleteNotificationCommand constructor",
)

// DeleteNotificationCommand represents a recipient permanently removing one
// of their notifications.
type DeleteNotificationCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

// NewDeleteNotificationCommand creates a validated deletion command.
func NewDeleteNotificationCommand(notificationID kernel.UUID, actor kernel.Actor) (DeleteNotificationCommand, error) {
	if err := errors.Join(notificationID.Validate(), actor.Validate()); err != nil {
		return DeleteNotificationCommand{}, err
	}

	return DeleteNotificationCommand{
		notificationID: notificationID,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteNotificationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteNotificationCommandIsNotConstructed)
}

// NotificationID returns the target notification's identifier.
func (c DeleteNotificationCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

// Actor returns who requested the deletion.
func (c DeleteNotificationCommand) Actor() kernel.Actor {
	return c.actor
}
