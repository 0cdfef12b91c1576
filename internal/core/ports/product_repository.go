package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// ProductStock is the slice of the catalog the order core needs: enough to
// decrement stock at checkout and detect the low-stock condition. The
// catalog itself is owned by another service.
type ProductStock struct {
	ProductID kernel.UUID
	SellerID  kernel.UUID
	Name      string
	Remaining int
}

// ProductRepository defines the stock-keeping contract used at checkout.
type ProductRepository interface {
	// DecrementStock atomically reduces a product's stock by quantity and
	// returns the state after the write. Insufficient stock is a validation
	// error and leaves the row untouched.
	DecrementStock(ctx context.Context, productID kernel.UUID, quantity int) (ProductStock, error)

	// GetStock returns the current stock state of a product.
	GetStock(ctx context.Context, productID kernel.UUID) (ProductStock, error)
}
