// Package productrepo keeps the stock slice of the catalog that checkout
// needs. The table is a projection maintained by the catalog service; this
// repository only reads it and decrements stock.
package productrepo

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductDTO represents the database structure for the stock projection.
type ProductDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID uuid.UUID `gorm:"type:uuid;index"`
	Name     string
	Stock    int
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// DecrementStock atomically reduces a product's stock by quantity. The guard
// in the WHERE clause makes overselling impossible under concurrent
// checkouts: the losing writer matches zero rows and the row is re-read to
// tell "not found" from "insufficient stock".
func (r *GormProductRepository) DecrementStock(
	ctx context.Context,
	productID kernel.UUID,
	quantity int,
) (ports.ProductStock, error) {
	if err := productID.Validate(); err != nil {
		return ports.ProductStock{}, err
	}
	if quantity <= 0 {
		return ports.ProductStock{}, errs.NewValueIsInvalidError("quantity")
	}

	var dto ProductDTO
	row := r.db.WithContext(ctx).Raw(`
		UPDATE products
		SET stock = stock - ?
		WHERE id = ? AND stock >= ?
		RETURNING id, seller_id, name, stock
	`, quantity, productID.Bytes(), quantity).Row()

	err := row.Scan(&dto.ID, &dto.SellerID, &dto.Name, &dto.Stock)
	if err == nil {
		return toStock(dto)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return ports.ProductStock{}, err
	}

	// Zero rows updated: distinguish a missing product from a short row.
	if _, getErr := r.GetStock(ctx, productID); getErr != nil {
		return ports.ProductStock{}, getErr
	}
	return ports.ProductStock{}, errs.NewValueIsInvalidError("quantity exceeds available stock")
}

// GetStock returns the current stock state of a product.
func (r *GormProductRepository) GetStock(ctx context.Context, productID kernel.UUID) (ports.ProductStock, error) {
	if err := productID.Validate(); err != nil {
		return ports.ProductStock{}, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProductStock{}, errs.NewObjectNotFoundError("product", productID.String())
		}
		return ports.ProductStock{}, err
	}

	return toStock(dto)
}

func toStock(dto ProductDTO) (ports.ProductStock, error) {
	productID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ProductStock{}, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return ports.ProductStock{}, err
	}

	return ports.ProductStock{
		ProductID: productID,
		SellerID:  sellerID,
		Name:      dto.Name,
		Remaining: dto.Stock,
	}, nil
}
