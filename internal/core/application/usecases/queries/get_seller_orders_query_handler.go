package queries

import (
	"context"
	"strconv"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSellerOrdersQueryHandler serves the seller dashboard straight from the
// orders table. Membership and the per-seller status are read from the
// seller_statuses JSON column keyed by seller id.
type GetSellerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetSellerOrdersQueryHandler creates a handler for seller dashboard queries.
func NewGetSellerOrdersQueryHandler(db *gorm.DB) GetSellerOrdersQueryHandler {
	return GetSellerOrdersQueryHandler{db: db}
}

// Handle executes the dashboard query, newest orders first.
func (h GetSellerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSellerOrdersQuery,
) ([]GetSellerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sellerKey := query.SellerID().String()

	sql := `
		SELECT
			id,
			number,
			buyer_id,
			status,
			seller_statuses ->> ? AS seller_status,
			total,
			created_at
		FROM orders
		WHERE seller_statuses ->> ? IS NOT NULL
	`
	args := []any{sellerKey, sellerKey}

	if filter := query.StatusFilter(); filter != nil {
		sql += ` AND (seller_statuses ->> ?)::int = ?`
		args = append(args, sellerKey, int(*filter))
	}
	sql += ` ORDER BY created_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetSellerOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetSellerOrdersQueryResponse
		var id, buyerID uuid.UUID
		var status int
		var sellerStatus string
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&resp.Number,
			&buyerID,
			&status,
			&sellerStatus,
			&resp.Total,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		buyer, idErr := kernel.UUIDFromBytes(buyerID[:])
		if idErr != nil {
			return nil, idErr
		}

		sellerStatusValue, convErr := strconv.Atoi(sellerStatus)
		if convErr != nil {
			return nil, convErr
		}

		resp.ID = orderID
		resp.BuyerID = buyer
		resp.Status = order.Status(status)
		resp.SellerStatus = order.SellerStatus(sellerStatusValue)
		resp.CreatedAt = createdAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
