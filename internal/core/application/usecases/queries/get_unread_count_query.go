package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetUnreadCountQueryIsNotConstructed = errors.New(
	"GetUnreadCountQuery must be created via NewGetUnreadCountQuery constructor",
)

// UnreadCounter is the slice of the notification dispatcher this query
// depends on: a cache-first unread count.
type UnreadCounter interface {
	UnreadCount(ctx context.Context, recipient kernel.Actor) (int, error)
}

// GetUnreadCountQuery retrieves the unread notification count for one
// recipient. The count backs a badge and is served through the dispatcher's
// cache, so it may lag the store by up to the cache TTL.
type GetUnreadCountQuery struct {
	recipient kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetUnreadCountQuery creates a validated unread-count query.
func NewGetUnreadCountQuery(recipient kernel.Actor) (GetUnreadCountQuery, error) {
	if err := recipient.Validate(); err != nil {
		return GetUnreadCountQuery{}, err
	}

	return GetUnreadCountQuery{
		recipient: recipient,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnreadCountQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreadCountQueryIsNotConstructed)
}

// Recipient returns the actor whose badge is being read.
func (q GetUnreadCountQuery) Recipient() kernel.Actor {
	return q.recipient
}

// GetUnreadCountQueryHandler resolves unread counts through the dispatcher.
type GetUnreadCountQueryHandler struct {
	counter UnreadCounter
}

// NewGetUnreadCountQueryHandler creates a handler for unread-count queries.
func NewGetUnreadCountQueryHandler(counter UnreadCounter) GetUnreadCountQueryHandler {
	return GetUnreadCountQueryHandler{counter: counter}
}

// Handle executes the unread-count query.
func (h GetUnreadCountQueryHandler) Handle(ctx context.Context, query GetUnreadCountQuery) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	return h.counter.UnreadCount(ctx, query.Recipient())
}
