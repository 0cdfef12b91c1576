// Package ports defines the driven-side contracts of the core: repository
// interfaces plus the geocoding and mail gateways. These interfaces
// establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage. The order number is
	// covered by a uniqueness constraint; a collision surfaces as
	// errs.ErrDuplicateIdentifier so the caller can regenerate and retry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// version-checked: if the stored row no longer matches the version the
	// aggregate was loaded with, Update returns errs.ErrConflict and
	// persists nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable order number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllByBuyer retrieves a buyer's orders, newest first.
	GetAllByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error)

	// GetAllBySeller retrieves every order containing at least one item
	// sold by the given seller, newest first.
	GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*order.Order, error)

	// GetAllByDeliveryPerson retrieves the orders assigned to a courier,
	// newest first.
	GetAllByDeliveryPerson(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)
}
