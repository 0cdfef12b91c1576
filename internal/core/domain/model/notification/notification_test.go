package notification_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buyerActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleBuyer)
	require.NoError(t, err)
	return actor
}

func newNotification(t *testing.T, recipient kernel.Actor) *notification.Notification {
	t.Helper()
	n, err := notification.NewNotification(kernel.NewUUID(), recipient,
		notification.TypeOrderStatusUpdated, "Order update",
		"Your order is now Preparing",
		map[string]string{"orderId": kernel.NewUUID().String()},
		notification.PriorityNormal)
	require.NoError(t, err)
	return n
}

func TestTypeValidate(t *testing.T) {
	for _, valid := range []notification.Type{
		notification.TypeNewOrder,
		notification.TypeOrderStatusUpdated,
		notification.TypeDeliveryAssigned,
		notification.TypeOrderDelivered,
		notification.TypeLowStock,
	} {
		assert.NoError(t, valid.Validate(), valid.String())
	}

	assert.Error(t, notification.TypeUnknown.Validate())
	assert.Error(t, notification.Type(42).Validate())
	assert.Equal(t, "Unknown", notification.Type(42).String())
}

func TestNewNotification(t *testing.T) {
	recipient := buyerActor(t)

	t.Run("success", func(t *testing.T) {
		n := newNotification(t, recipient)

		assert.Equal(t, recipient, n.Recipient())
		assert.Equal(t, notification.TypeOrderStatusUpdated, n.Type())
		assert.False(t, n.IsRead())
		assert.False(t, n.CreatedAt().IsZero())
	})

	t.Run("requires a title", func(t *testing.T) {
		_, err := notification.NewNotification(kernel.NewUUID(), recipient,
			notification.TypeNewOrder, "", "body", nil, notification.PriorityNormal)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires a message", func(t *testing.T) {
		_, err := notification.NewNotification(kernel.NewUUID(), recipient,
			notification.TypeNewOrder, "title", "", nil, notification.PriorityNormal)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires a valid type", func(t *testing.T) {
		_, err := notification.NewNotification(kernel.NewUUID(), recipient,
			notification.TypeUnknown, "title", "body", nil, notification.PriorityNormal)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires a constructed recipient", func(t *testing.T) {
		_, err := notification.NewNotification(kernel.NewUUID(), kernel.Actor{},
			notification.TypeNewOrder, "title", "body", nil, notification.PriorityNormal)
		assert.Error(t, err)
	})

	t.Run("data is copied", func(t *testing.T) {
		data := map[string]string{"orderId": "abc"}
		n, err := notification.NewNotification(kernel.NewUUID(), recipient,
			notification.TypeNewOrder, "title", "body", data, notification.PriorityHigh)
		require.NoError(t, err)

		data["orderId"] = "mutated"
		assert.Equal(t, "abc", n.Data()["orderId"])
	})
}

func TestRestoreNotification(t *testing.T) {
	recipient := buyerActor(t)
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		n, err := notification.RestoreNotification(kernel.NewUUID(), recipient,
			notification.TypeOrderDelivered, "Delivered", "Your order arrived",
			nil, notification.PriorityNormal, true, createdAt)

		require.NoError(t, err)
		assert.True(t, n.IsRead())
		assert.Equal(t, createdAt, n.CreatedAt())
	})

	t.Run("requires createdAt", func(t *testing.T) {
		_, err := notification.RestoreNotification(kernel.NewUUID(), recipient,
			notification.TypeOrderDelivered, "Delivered", "body",
			nil, notification.PriorityNormal, false, time.Time{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNotificationMarkRead(t *testing.T) {
	t.Run("recipient marks read", func(t *testing.T) {
		recipient := buyerActor(t)
		n := newNotification(t, recipient)

		require.NoError(t, n.MarkRead(recipient))
		assert.True(t, n.IsRead())
	})

	t.Run("marking read twice is a no-op", func(t *testing.T) {
		recipient := buyerActor(t)
		n := newNotification(t, recipient)

		require.NoError(t, n.MarkRead(recipient))
		require.NoError(t, n.MarkRead(recipient))
		assert.True(t, n.IsRead())
	})

	t.Run("another actor is rejected", func(t *testing.T) {
		recipient := buyerActor(t)
		n := newNotification(t, recipient)

		other := buyerActor(t)
		err := n.MarkRead(other)

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.False(t, n.IsRead())
	})

	t.Run("same id under a different role is rejected", func(t *testing.T) {
		recipient := buyerActor(t)
		n := newNotification(t, recipient)

		asSeller, err := kernel.NewActor(recipient.ID(), kernel.RoleSeller)
		require.NoError(t, err)

		assert.ErrorIs(t, n.MarkRead(asSeller), errs.ErrUnauthorized)
	})

	t.Run("unconstructed notification is rejected", func(t *testing.T) {
		var n notification.Notification
		assert.ErrorIs(t, n.MarkRead(buyerActor(t)), notification.ErrNotificationIsNotConstructed)
	})
}

func TestNotificationIsExpired(t *testing.T) {
	recipient := buyerActor(t)
	createdAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	n, err := notification.RestoreNotification(kernel.NewUUID(), recipient,
		notification.TypeNewOrder, "New order", "body",
		nil, notification.PriorityNormal, false, createdAt)
	require.NoError(t, err)

	retention := 30 * 24 * time.Hour

	assert.False(t, n.IsExpired(createdAt.Add(retention), retention))
	assert.True(t, n.IsExpired(createdAt.Add(retention+time.Second), retention))
}
