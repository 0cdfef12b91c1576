// Package queries contains read-only operations over the store. Read models
// are built with direct SQL in the CQRS style: no aggregates are hydrated
// and no domain invariants are re-run on the way out.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// defaultNotificationPageSize caps unbounded requests.
const defaultNotificationPageSize = 20

// GetNotificationsQuery retrieves one recipient's notifications newest
// first, paged by limit and offset.
type GetNotificationsQuery struct {
	recipient kernel.Actor
	limit     int
	offset    int

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a validated notifications page query.
// A non-positive limit falls back to the default page size; a negative
// offset is clamped to zero.
func NewGetNotificationsQuery(recipient kernel.Actor, limit, offset int) (GetNotificationsQuery, error) {
	if err := recipient.Validate(); err != nil {
		return GetNotificationsQuery{}, err
	}

	if limit <= 0 {
		limit = defaultNotificationPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return GetNotificationsQuery{
		recipient: recipient,
		limit:     limit,
		offset:    offset,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// Recipient returns the actor whose stream is being read.
func (q GetNotificationsQuery) Recipient() kernel.Actor {
	return q.recipient
}

// Limit returns the page size.
func (q GetNotificationsQuery) Limit() int {
	return q.limit
}

// Offset returns the page offset.
func (q GetNotificationsQuery) Offset() int {
	return q.offset
}

// GetNotificationsQueryResponse is one notification read model.
type GetNotificationsQueryResponse struct {
	ID        kernel.UUID
	Type      notification.Type
	Title     string
	Message   string
	Data      map[string]string
	Priority  notification.Priority
	IsRead    bool
	CreatedAt time.Time
}
