package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrItemsAreRequired        = errors.New("at least one item is required")
	ErrDeliveryFeeIsInvalid    = errors.New("delivery fee must not be negative")
	ErrPaymentMethodIsRequired = errors.New("payment method is required")
)

// CheckoutCommand represents a buyer's request to place an order. It carries
// the cart items with their seller payment snapshots already resolved, so
// the handler never reaches back into the catalog for pricing.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	buyerID             kernel.UUID
	buyerEmail          string
	items               []order.Item
	deliveryFee         float64
	address             order.Address
	paymentMethod       string
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a validated checkout command. The buyer email
// is optional; when empty no confirmation email is attempted.
func NewCheckoutCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	buyerEmail string,
	items []order.Item,
	deliveryFee float64,
	address order.Address,
	paymentMethod string,
	specialInstructions string,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		buyerEmail:          buyerEmail,
		address:             address,
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setItems(items),
		cmd.setDeliveryFee(deliveryFee),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the identity of the buyer placing the order.
func (c CheckoutCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// BuyerEmail returns the buyer's email for the confirmation send, possibly empty.
func (c CheckoutCommand) BuyerEmail() string {
	return c.buyerEmail
}

// Items returns a copy of the cart items.
func (c CheckoutCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// DeliveryFee returns the delivery fee quoted at checkout.
func (c CheckoutCommand) DeliveryFee() float64 {
	return c.deliveryFee
}

// Address returns the delivery destination.
func (c CheckoutCommand) Address() order.Address {
	return c.address
}

// PaymentMethod returns the declared payment method.
func (c CheckoutCommand) PaymentMethod() string {
	return c.paymentMethod
}

// SpecialInstructions returns the buyer's free-form delivery notes.
func (c CheckoutCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *CheckoutCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CheckoutCommand) setDeliveryFee(deliveryFee float64) error {
	if deliveryFee < 0 {
		return ErrDeliveryFeeIsInvalid
	}

	c.deliveryFee = deliveryFee
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return ErrPaymentMethodIsRequired
	}

	c.paymentMethod = paymentMethod
	return nil
}
