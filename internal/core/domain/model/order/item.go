package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// PaymentSnapshot captures a seller's payment-receiving details as they were
// at order time. The snapshot is immutable after creation: a seller editing
// their profile later never changes what the buyer saw when paying.
type PaymentSnapshot struct {
	businessName  string
	accountNumber string
	accountName   string
}

// NewPaymentSnapshot creates a snapshot of a seller's payment details.
// The business name is required; account fields may be empty for sellers
// accepting cash on delivery only.
func NewPaymentSnapshot(businessName, accountNumber, accountName string) (PaymentSnapshot, error) {
	if businessName == "" {
		return PaymentSnapshot{}, errs.NewValueIsRequiredError("businessName")
	}

	return PaymentSnapshot{
		businessName:  businessName,
		accountNumber: accountNumber,
		accountName:   accountName,
	}, nil
}

// BusinessName returns the seller's business name at order time.
func (p PaymentSnapshot) BusinessName() string {
	return p.businessName
}

// AccountNumber returns the seller's payment account number at order time.
func (p PaymentSnapshot) AccountNumber() string {
	return p.accountNumber
}

// AccountName returns the seller's payment account name at order time.
func (p PaymentSnapshot) AccountName() string {
	return p.accountName
}

// Item is one line entry of an order. Name, price, and image are captured
// copies of the product at order time, and the seller's payment details are
// snapshotted alongside, so later product or profile edits never rewrite an
// existing order.
type Item struct {
	productID     kernel.UUID
	name          string
	price         float64
	quantity      int
	imageURL      string
	sellerID      kernel.UUID
	sellerPayment PaymentSnapshot

	canReview bool
	reviewed  bool
}

// NewItem creates a validated order line.
func NewItem(
	productID kernel.UUID,
	name string,
	price float64,
	quantity int,
	imageURL string,
	sellerID kernel.UUID,
	sellerPayment PaymentSnapshot,
) (Item, error) {
	item := Item{
		imageURL:      imageURL,
		sellerPayment: sellerPayment,
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setPrice(price),
		item.setQuantity(quantity),
		item.setSellerID(sellerID),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// RestoreItem reconstructs an item from persistence, including its
// review-eligibility flags. No validation is re-run beyond identifiers.
func RestoreItem(
	productID kernel.UUID,
	name string,
	price float64,
	quantity int,
	imageURL string,
	sellerID kernel.UUID,
	sellerPayment PaymentSnapshot,
	canReview bool,
	reviewed bool,
) (Item, error) {
	item, err := NewItem(productID, name, price, quantity, imageURL, sellerID, sellerPayment)
	if err != nil {
		return Item{}, err
	}

	item.canReview = canReview
	item.reviewed = reviewed
	return item, nil
}

// ProductID returns the referenced product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name captured at order time.
func (i Item) Name() string {
	return i.name
}

// Price returns the unit price captured at order time.
func (i Item) Price() float64 {
	return i.price
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// ImageURL returns the product image reference captured at order time.
func (i Item) ImageURL() string {
	return i.imageURL
}

// SellerID returns the identifier of the seller fulfilling this line.
func (i Item) SellerID() kernel.UUID {
	return i.sellerID
}

// SellerPayment returns the seller's payment-detail snapshot.
func (i Item) SellerPayment() PaymentSnapshot {
	return i.sellerPayment
}

// CanReview reports whether the buyer may review this item.
// False until the order is delivered, then true until reviewed.
func (i Item) CanReview() bool {
	return i.canReview
}

// Reviewed reports whether the buyer has already reviewed this item.
func (i Item) Reviewed() bool {
	return i.reviewed
}

// Subtotal returns price times quantity for this line.
func (i Item) Subtotal() float64 {
	return i.price * float64(i.quantity)
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	i.productID = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%f is negative", price))
	}
	i.price = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerID", err)
	}
	i.sellerID = id
	return nil
}
