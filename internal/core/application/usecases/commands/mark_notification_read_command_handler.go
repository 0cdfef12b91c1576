package commands

import (
	"context"
)

// MarkNotificationReadCommandHandler flips one notification's read flag and
// invalidates the recipient's cached unread count.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	notifier   Notifier
}

// NewMarkNotificationReadCommandHandler creates a handler for mark-read operations.
func NewMarkNotificationReadCommandHandler(
	uowFactory NotificationUoWFactory,
	notifier Notifier,
) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the mark-read command. The aggregate enforces that only
// the recipient may flip the flag.
func (h *MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
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

	notifications := uow.NotificationRepository()
	n, err := notifications.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if err := n.MarkRead(cmd.Actor()); err != nil {
		return err
	}

	if err := notifications.Update(ctx, n); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Invalidate(cmd.Actor().ID())
	return nil
}
