// Package notificationrepo persists notification aggregates. The recipient is
// stored as an (id, role) pair so the same user keeps separate streams per
// role, matching how unread counts are cached.
package notificationrepo

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting notifications.
type NotificationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID   uuid.UUID `gorm:"type:uuid;index:idx_notifications_recipient"`
	RecipientRole int       `gorm:"index:idx_notifications_recipient"`
	Type          int
	Title         string
	Message       string
	Data          []byte `gorm:"type:jsonb"`
	Priority      int
	IsRead        bool
	CreatedAt     time.Time `gorm:"index"`
}

// TableName specifies the database table name for notification entities.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification aggregate to its database representation.
func fromDomain(n *notification.Notification) (NotificationDTO, error) {
	data, err := json.Marshal(n.Data())
	if err != nil {
		return NotificationDTO{}, err
	}

	return NotificationDTO{
		ID:            n.ID().Bytes(),
		RecipientID:   n.Recipient().ID().Bytes(),
		RecipientRole: int(n.Recipient().Role()),
		Type:          int(n.Type()),
		Title:         n.Title(),
		Message:       n.Message(),
		Data:          data,
		Priority:      int(n.Priority()),
		IsRead:        n.IsRead(),
		CreatedAt:     n.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to a notification aggregate.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	recipient, err := kernel.NewActor(recipientID, kernel.Role(dto.RecipientRole))
	if err != nil {
		return nil, err
	}

	var data map[string]string
	if len(dto.Data) > 0 {
		if err = json.Unmarshal(dto.Data, &data); err != nil {
			return nil, err
		}
	}

	return notification.RestoreNotification(
		id,
		recipient,
		notification.Type(dto.Type),
		dto.Title,
		dto.Message,
		data,
		notification.Priority(dto.Priority),
		dto.IsRead,
		dto.CreatedAt,
	)
}
