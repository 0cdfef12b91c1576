package commands

import (
	"context"
)

// MarkAllNotificationsReadCommandHandler marks every unread notification of
// one recipient as read in a single statement, then invalidates the cached
// unread count.
type MarkAllNotificationsReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	notifier   Notifier
}

// NewMarkAllNotificationsReadCommandHandler creates a handler for mark-all-read operations.
func NewMarkAllNotificationsReadCommandHandler(
	uowFactory NotificationUoWFactory,
	notifier Notifier,
) MarkAllNotificationsReadCommandHandler {
	return MarkAllNotificationsReadCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the mark-all-read command. The recipient can only address
// their own stream, so no further authorization is needed here.
func (h *MarkAllNotificationsReadCommandHandler) Handle(ctx context.Context, cmd MarkAllNotificationsReadCommand) error {
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

	if _, err := uow.NotificationRepository().MarkAllRead(ctx, cmd.Actor()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Invalidate(cmd.Actor().ID())
	return nil
}
