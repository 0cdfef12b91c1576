package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// DeleteNotificationCommandHandler removes a notification after checking
// that the requester is its recipient (or an admin), then invalidates the
// recipient's cached unread count.
type DeleteNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
	notifier   Notifier
}

// NewDeleteNotificationCommandHandler creates a handler for notification deletion.
func NewDeleteNotificationCommandHandler(
	uowFactory NotificationUoWFactory,
	notifier Notifier,
) DeleteNotificationCommandHandler {
	return DeleteNotificationCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the deletion command.
func (h *DeleteNotificationCommandHandler) Handle(ctx context.Context, cmd DeleteNotificationCommand) error {
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

	if !n.Recipient().IsEqual(cmd.Actor()) && !cmd.Actor().Is(kernel.RoleAdmin) {
		return errs.NewUnauthorizedError(cmd.Actor().String(), "delete the notification")
	}

	if err := notifications.Delete(ctx, n.ID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Invalidate(n.Recipient().ID())
	return nil
}
