package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// aggregates. Recipients are (id, role) pairs: the same user id under two
// roles addresses two disjoint notification streams.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists changes to an existing notification.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a notification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetAllByRecipient retrieves one recipient's notifications ordered
	// newest first, with limit/offset pagination. A non-positive limit
	// returns the full stream.
	GetAllByRecipient(ctx context.Context, recipient kernel.Actor, limit, offset int) ([]*notification.Notification, error)

	// CountUnread returns the number of unread notifications addressed to
	// the recipient.
	CountUnread(ctx context.Context, recipient kernel.Actor) (int, error)

	// MarkAllRead flips the read flag on every unread notification of the
	// recipient and returns how many rows changed.
	MarkAllRead(ctx context.Context, recipient kernel.Actor) (int, error)

	// Delete removes a notification permanently.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteOlderThan removes every notification created before the cutoff
	// and returns how many were removed. Used by the retention job.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
