package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetDeliveryRouteQueryIsNotConstructed = errors.New(
	"GetDeliveryRouteQuery must be created via NewGetDeliveryRouteQuery constructor",
)

// GetDeliveryRouteQuery resolves an order's delivery address to map
// coordinates for the courier's route view.
type GetDeliveryRouteQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryRouteQuery creates a validated route query.
func NewGetDeliveryRouteQuery(orderID kernel.UUID) (GetDeliveryRouteQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDeliveryRouteQuery{}, err
	}

	return GetDeliveryRouteQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryRouteQueryIsNotConstructed)
}

// OrderID returns the order whose route is requested.
func (q GetDeliveryRouteQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetDeliveryRouteQueryResponse carries the resolved destination. The
// coordinates may be an approximate regional fallback when geocoding was
// unavailable; the address text is always the buyer's exact input.
type GetDeliveryRouteQueryResponse struct {
	OrderID     kernel.UUID
	Number      string
	AddressText string
	Destination kernel.GeoPoint
}
