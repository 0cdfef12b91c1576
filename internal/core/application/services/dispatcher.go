// Package services wires application-level services that sit between the
// use cases and the ports: currently the notification dispatcher with its
// cached unread counters.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/cache"
	"marketplace/internal/pkg/errs"
)

// UnreadCountTTL is how long a computed unread count stays valid. Within
// the window the badge may lag writes from other instances; reads on this
// instance invalidate eagerly on every dispatch and read-flag change.
const UnreadCountTTL = 60 * time.Second

// Dispatcher creates notifications and serves unread counts. It is the only
// writer of the unread-count cache, so every mutation path funnels through
// it and invalidates eagerly.
type Dispatcher struct {
	notifications ports.NotificationRepository
	counts        *cache.Cache[int]
	logger        *slog.Logger
}

// NewDispatcher creates a dispatcher over the given repository and cache.
func NewDispatcher(
	notifications ports.NotificationRepository,
	counts *cache.Cache[int],
	logger *slog.Logger,
) (*Dispatcher, error) {
	if notifications == nil {
		return nil, errs.NewValueIsRequiredError("notifications")
	}
	if counts == nil {
		return nil, errs.NewValueIsRequiredError("counts")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Dispatcher{
		notifications: notifications,
		counts:        counts,
		logger:        logger.With("component", "notification_dispatcher"),
	}, nil
}

// Notify creates and persists one notification for the recipient, then
// invalidates the recipient's cached unread count. Persistence failures are
// returned to the caller; cache state never fails a dispatch.
func (d *Dispatcher) Notify(
	ctx context.Context,
	recipient kernel.Actor,
	notificationType notification.Type,
	title string,
	message string,
	data map[string]string,
	priority notification.Priority,
) (*notification.Notification, error) {
	n, err := notification.NewNotification(kernel.NewUUID(), recipient,
		notificationType, title, message, data, priority)
	if err != nil {
		return nil, err
	}

	if err := d.notifications.Add(ctx, n); err != nil {
		return nil, err
	}

	d.Invalidate(recipient.ID())

	d.logger.DebugContext(ctx, "notification dispatched",
		"type", notificationType.String(), "recipient", recipient.String())
	return n, nil
}

// UnreadCount returns the recipient's unread notification count, served from
// cache when a fresh value exists and recomputed from the repository
// otherwise. A recomputed value is cached for UnreadCountTTL.
func (d *Dispatcher) UnreadCount(ctx context.Context, recipient kernel.Actor) (int, error) {
	if err := recipient.Validate(); err != nil {
		return 0, err
	}

	key := countKey(recipient)
	if count, ok := d.counts.Get(key); ok {
		return count, nil
	}

	count, err := d.notifications.CountUnread(ctx, recipient)
	if err != nil {
		return 0, err
	}

	d.counts.Set(key, count, UnreadCountTTL)
	return count, nil
}

// Invalidate drops the cached unread counts for every role variant of the
// identity. Callers rarely know which role a mutation touched, and deleting
// a key that was never set is free, so invalidation is deliberately broad.
func (d *Dispatcher) Invalidate(recipientID kernel.UUID) {
	for _, role := range kernel.AllRoles() {
		actor, err := kernel.NewActor(recipientID, role)
		if err != nil {
			continue
		}
		d.counts.Delete(countKey(actor))
	}
}

func countKey(recipient kernel.Actor) string {
	return fmt.Sprintf("unread:%s:%s", recipient.Role(), recipient.ID())
}
