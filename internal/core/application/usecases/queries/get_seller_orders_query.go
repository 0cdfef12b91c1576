package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetSellerOrdersQueryIsNotConstructed = errors.New(
	"GetSellerOrdersQuery must be created via NewGetSellerOrdersQuery constructor",
)

// GetSellerOrdersQuery retrieves the seller dashboard: every order that
// contains at least one of the seller's items, optionally filtered by that
// seller's own fulfillment status.
type GetSellerOrdersQuery struct {
	sellerID     kernel.UUID
	statusFilter *order.SellerStatus

	guard guard.ConstructorGuard
}

// NewGetSellerOrdersQuery creates a validated seller dashboard query.
// A nil statusFilter returns all of the seller's orders.
func NewGetSellerOrdersQuery(sellerID kernel.UUID, statusFilter *order.SellerStatus) (GetSellerOrdersQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetSellerOrdersQuery{}, err
	}
	if statusFilter != nil {
		if err := statusFilter.Validate(); err != nil {
			return GetSellerOrdersQuery{}, err
		}
	}

	return GetSellerOrdersQuery{
		sellerID:     sellerID,
		statusFilter: statusFilter,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSellerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerOrdersQueryIsNotConstructed)
}

// SellerID returns the seller whose dashboard is being read.
func (q GetSellerOrdersQuery) SellerID() kernel.UUID {
	return q.sellerID
}

// StatusFilter returns the optional seller-status filter, nil for all.
func (q GetSellerOrdersQuery) StatusFilter() *order.SellerStatus {
	return q.statusFilter
}

// GetSellerOrdersQueryResponse is one dashboard row. SellerStatus is the
// queried seller's own entry; Status is the buyer-facing overall state.
type GetSellerOrdersQueryResponse struct {
	ID           kernel.UUID
	Number       string
	BuyerID      kernel.UUID
	Status       order.Status
	SellerStatus order.SellerStatus
	Total        float64
	CreatedAt    time.Time
}
