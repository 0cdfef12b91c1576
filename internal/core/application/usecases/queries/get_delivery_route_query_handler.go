package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryRouteQueryHandler reads the order's address and resolves it
// through the geocoding collaborator. The geocoder degrades to a fixed
// regional point on failure, so route generation always succeeds for an
// existing order.
type GetDeliveryRouteQueryHandler struct {
	db       *gorm.DB
	geocoder ports.Geocoder
}

// NewGetDeliveryRouteQueryHandler creates a handler for route queries.
func NewGetDeliveryRouteQueryHandler(db *gorm.DB, geocoder ports.Geocoder) GetDeliveryRouteQueryHandler {
	return GetDeliveryRouteQueryHandler{db: db, geocoder: geocoder}
}

// Handle executes the route query.
func (h GetDeliveryRouteQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryRouteQuery,
) (GetDeliveryRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryRouteQueryResponse{}, err
	}

	var id uuid.UUID
	var number, label, line, city, postalCode, phone string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			address_label,
			address_line,
			address_city,
			address_postal_code,
			address_phone
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&id, &number, &label, &line, &city, &postalCode, &phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDeliveryRouteQueryResponse{},
				errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetDeliveryRouteQueryResponse{}, err
	}

	addr, err := order.NewAddress(label, line, city, postalCode, phone)
	if err != nil {
		return GetDeliveryRouteQueryResponse{}, err
	}

	destination, err := h.geocoder.Resolve(ctx, addr.Text())
	if err != nil {
		return GetDeliveryRouteQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetDeliveryRouteQueryResponse{}, err
	}

	return GetDeliveryRouteQueryResponse{
		OrderID:     orderID,
		Number:      number,
		AddressText: addr.Text(),
		Destination: destination,
	}, nil
}
