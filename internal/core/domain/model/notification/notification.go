package notification

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification instance
// was not created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification constructor")

// Notification is an aggregate representing one message addressed to one
// actor. Recipients are identified by actor id plus role, so a user acting
// as both buyer and seller holds two independent notification streams.
type Notification struct {
	id        kernel.UUID
	recipient kernel.Actor

	notificationType Type
	title            string
	message          string
	data             map[string]string
	priority         Priority

	isRead    bool
	createdAt time.Time

	isConstructed bool
}

// NewNotification creates an unread notification for the given recipient.
// The creation time is captured here and drives both newest-first ordering
// and age-based expiry.
func NewNotification(
	id kernel.UUID,
	recipient kernel.Actor,
	notificationType Type,
	title string,
	message string,
	data map[string]string,
	priority Priority,
) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	if err := recipient.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("recipient", err)
	}
	if err := notificationType.Validate(); err != nil {
		return nil, err
	}
	if err := priority.Validate(); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	if message == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}

	return &Notification{
		id:               id,
		recipient:        recipient,
		notificationType: notificationType,
		title:            title,
		message:          message,
		data:             copyData(data),
		priority:         priority,
		isRead:           false,
		createdAt:        time.Now().UTC(),
		isConstructed:    true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	recipient kernel.Actor,
	notificationType Type,
	title string,
	message string,
	data map[string]string,
	priority Priority,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(
		id.Validate(),
		recipient.Validate(),
		notificationType.Validate(),
		priority.Validate(),
	); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Notification{
		id:               id,
		recipient:        recipient,
		notificationType: notificationType,
		title:            title,
		message:          message,
		data:             copyData(data),
		priority:         priority,
		isRead:           isRead,
		createdAt:        createdAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Notification instance was properly constructed.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// IsEqual compares two notifications by their unique identifiers.
func (n *Notification) IsEqual(other *Notification) bool {
	return other != nil && n.id.IsEqual(other.id)
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// Recipient returns the actor the notification is addressed to.
func (n *Notification) Recipient() kernel.Actor {
	return n.recipient
}

// Type returns the notification kind.
func (n *Notification) Type() Type {
	return n.notificationType
}

// Title returns the short display title.
func (n *Notification) Title() string {
	return n.title
}

// Message returns the display body.
func (n *Notification) Message() string {
	return n.message
}

// Data returns a copy of the structured payload, e.g. the related order id.
func (n *Notification) Data() map[string]string {
	return copyData(n.data)
}

// Priority returns the display priority.
func (n *Notification) Priority() Priority {
	return n.priority
}

// IsRead reports whether the recipient has read the notification.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt returns the creation time.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead flips the read flag. Only the recipient may do so; the flag is
// monotonic, so marking an already-read notification is a no-op.
func (n *Notification) MarkRead(actor kernel.Actor) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if !n.recipient.IsEqual(actor) {
		return errs.NewUnauthorizedError(actor.String(), "mark the notification read")
	}

	n.isRead = true
	return nil
}

// IsExpired reports whether the notification is older than the retention
// window as of the given instant. Used by the cleanup job.
func (n *Notification) IsExpired(asOf time.Time, retention time.Duration) bool {
	return asOf.Sub(n.createdAt) > retention
}

func copyData(data map[string]string) map[string]string {
	if data == nil {
		return nil
	}
	copied := make(map[string]string, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return copied
}
