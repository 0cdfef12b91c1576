package queries

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler serves the notifications page for one
// recipient straight from the database, newest first.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for notification page queries.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the page query. Results are ordered by creation time
// descending with id as a tiebreaker so pagination is stable.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]GetNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			title,
			message,
			data,
			priority,
			is_read,
			created_at
		FROM notifications
		WHERE recipient_id = ? AND recipient_role = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, query.Recipient().ID().Bytes(), int(query.Recipient().Role()),
		query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetNotificationsQueryResponse
		var id uuid.UUID
		var notificationType, priority int
		var data []byte
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&notificationType,
			&resp.Title,
			&resp.Message,
			&data,
			&priority,
			&resp.IsRead,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = notificationID
		resp.Type = notification.Type(notificationType)
		resp.Priority = notification.Priority(priority)
		resp.CreatedAt = createdAt

		if len(data) > 0 {
			if err = json.Unmarshal(data, &resp.Data); err != nil {
				return nil, err
			}
		}

		notifications = append(notifications, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
