package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNoItems is returned when an order is created without line entries.
	ErrNoItems = errors.New("order must contain at least one item")
)

// Order is the central aggregate of the marketplace. A single order spans
// one buyer, one or more independent sellers, and one delivery courier,
// each advancing a different status facet. The aggregate owns the rules for
// every transition and the per-field write authority of each actor role.
//
// Invariants maintained by the aggregate:
//   - exactly one seller-status entry per distinct seller in items
//   - deliveredAt is non-nil iff deliveryStatus is Delivered
//   - canReview is false until the order is delivered, then monotonic
//   - the status history holds at least the creation entry and grows by
//     exactly one entry per accepted transition
//   - the order number is assigned once, at creation, and never regenerated
type Order struct {
	id      kernel.UUID
	number  string
	buyerID kernel.UUID

	items []Item
	total float64

	status         Status
	sellerStatuses map[kernel.UUID]SellerStatus

	deliveryStatus   DeliveryStatus
	deliveryPersonID *kernel.UUID

	deliveryFee         float64
	address             Address
	paymentMethod       string
	specialInstructions string

	proofOfPayments       map[kernel.UUID]string
	proofOfDelivery       string
	proofOfDeliveryImages []string
	deliveredAt           *time.Time

	history []StatusChange

	// version supports optimistic concurrency: the repository rejects a
	// write whose version no longer matches the stored row.
	version int

	isConstructed bool
}

// NewOrder creates an order at checkout. The order number must come from the
// number generator and is immutable afterwards. The total is computed here,
// once, from the item subtotals plus the delivery fee. One Pending
// seller-status entry is created per distinct seller in items, and the
// creation entry is appended to the status history on behalf of the buyer.
func NewOrder(
	id kernel.UUID,
	number string,
	buyerID kernel.UUID,
	items []Item,
	deliveryFee float64,
	address Address,
	paymentMethod string,
	specialInstructions string,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if err := buyerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("buyerID", err)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if deliveryFee < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%f is negative", deliveryFee))
	}
	if paymentMethod == "" {
		return nil, errs.NewValueIsRequiredError("paymentMethod")
	}

	o := &Order{
		id:                  id,
		number:              number,
		buyerID:             buyerID,
		items:               append([]Item(nil), items...),
		status:              Pending,
		sellerStatuses:      make(map[kernel.UUID]SellerStatus),
		deliveryStatus:      DeliveryPending,
		deliveryFee:         deliveryFee,
		address:             address,
		paymentMethod:       paymentMethod,
		specialInstructions: specialInstructions,
		proofOfPayments:     make(map[kernel.UUID]string),
		version:             1,
		isConstructed:       true,
	}

	for _, item := range o.items {
		o.total += item.Subtotal()
		o.sellerStatuses[item.SellerID()] = SellerPending
	}
	o.total += deliveryFee

	buyer, err := kernel.NewActor(buyerID, kernel.RoleBuyer)
	if err != nil {
		return nil, err
	}
	o.appendChange(StatusFacet, Pending.String(), buyer)

	return o, nil
}

// RestoreOrder reconstructs an order from persistence with its full state.
// The structural invariants (identity, at least one item, at least the
// creation history entry) are re-checked; business transitions are not
// replayed.
func RestoreOrder(
	id kernel.UUID,
	number string,
	buyerID kernel.UUID,
	items []Item,
	total float64,
	status Status,
	sellerStatuses map[kernel.UUID]SellerStatus,
	deliveryStatus DeliveryStatus,
	deliveryPersonID *kernel.UUID,
	deliveryFee float64,
	address Address,
	paymentMethod string,
	specialInstructions string,
	proofOfPayments map[kernel.UUID]string,
	proofOfDelivery string,
	proofOfDeliveryImages []string,
	deliveredAt *time.Time,
	history []StatusChange,
	version int,
) (*Order, error) {
	if err := errors.Join(id.Validate(), buyerID.Validate(), status.Validate(), deliveryStatus.Validate()); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("history")
	}
	if (deliveredAt != nil) != (deliveryStatus == DeliveryDelivered) {
		return nil, errs.NewValueIsInvalidError("deliveredAt must be set exactly when delivery status is Delivered")
	}

	statuses := make(map[kernel.UUID]SellerStatus, len(sellerStatuses))
	for sellerID, s := range sellerStatuses {
		statuses[sellerID] = s
	}
	proofs := make(map[kernel.UUID]string, len(proofOfPayments))
	for sellerID, ref := range proofOfPayments {
		proofs[sellerID] = ref
	}

	return &Order{
		id:                    id,
		number:                number,
		buyerID:               buyerID,
		items:                 append([]Item(nil), items...),
		total:                 total,
		status:                status,
		sellerStatuses:        statuses,
		deliveryStatus:        deliveryStatus,
		deliveryPersonID:      deliveryPersonID,
		deliveryFee:           deliveryFee,
		address:               address,
		paymentMethod:         paymentMethod,
		specialInstructions:   specialInstructions,
		proofOfPayments:       proofs,
		proofOfDelivery:       proofOfDelivery,
		proofOfDeliveryImages: append([]string(nil), proofOfDeliveryImages...),
		deliveredAt:           deliveredAt,
		history:               append([]StatusChange(nil), history...),
		version:               version,
		isConstructed:         true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// BuyerID returns the identifier of the buyer who placed the order.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// Items returns a copy of the order's line entries.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Total returns the monetary sum computed at creation.
func (o *Order) Total() float64 {
	return o.total
}

// Status returns the overall lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// SellerStatuses returns a copy of the per-seller fulfillment states.
func (o *Order) SellerStatuses() map[kernel.UUID]SellerStatus {
	statuses := make(map[kernel.UUID]SellerStatus, len(o.sellerStatuses))
	for sellerID, s := range o.sellerStatuses {
		statuses[sellerID] = s
	}
	return statuses
}

// SellerStatusOf returns the fulfillment state for one seller.
func (o *Order) SellerStatusOf(sellerID kernel.UUID) (SellerStatus, bool) {
	s, ok := o.sellerStatuses[sellerID]
	return s, ok
}

// Sellers returns the distinct sellers represented in the order's items.
func (o *Order) Sellers() []kernel.UUID {
	sellers := make([]kernel.UUID, 0, len(o.sellerStatuses))
	for sellerID := range o.sellerStatuses {
		sellers = append(sellers, sellerID)
	}
	return sellers
}

// DeliveryStatus returns the courier-facing transit state.
func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// DeliveryPerson returns the assigned courier's ID, or nil before assignment.
func (o *Order) DeliveryPerson() *kernel.UUID {
	return o.deliveryPersonID
}

// DeliveryFee returns the delivery fee captured at checkout.
func (o *Order) DeliveryFee() float64 {
	return o.deliveryFee
}

// Address returns the structured delivery destination.
func (o *Order) Address() Address {
	return o.address
}

// PaymentMethod returns the declared payment method. The system records it;
// it does not validate or settle payment.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// SpecialInstructions returns the buyer's free-form delivery notes.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// ProofOfPayments returns a copy of the per-seller payment-proof references.
func (o *Order) ProofOfPayments() map[kernel.UUID]string {
	proofs := make(map[kernel.UUID]string, len(o.proofOfPayments))
	for sellerID, ref := range o.proofOfPayments {
		proofs[sellerID] = ref
	}
	return proofs
}

// ProofOfDelivery returns the courier's completion note, empty before delivery.
func (o *Order) ProofOfDelivery() string {
	return o.proofOfDelivery
}

// ProofOfDeliveryImages returns a copy of the courier's completion images.
func (o *Order) ProofOfDeliveryImages() []string {
	return append([]string(nil), o.proofOfDeliveryImages...)
}

// DeliveredAt returns the delivery completion time, nil unless the delivery
// status is Delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// History returns a copy of the append-only status history.
func (o *Order) History() []StatusChange {
	return append([]StatusChange(nil), o.history...)
}

// Version returns the optimistic-concurrency version loaded from the store.
func (o *Order) Version() int {
	return o.version
}

// UpdateSellerStatus advances one seller's fulfillment entry. Only that
// seller (or an admin) may touch the entry; a seller addressing another
// seller's entry is rejected with Unauthorized. The overall status is not
// touched here: its derivation from seller entries is a read-side
// aggregation applied separately.
func (o *Order) UpdateSellerStatus(sellerID kernel.UUID, next SellerStatus, actor kernel.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if !o.actorOwnsSellerEntry(actor, sellerID) {
		return errs.NewUnauthorizedError(actor.String(),
			fmt.Sprintf("update seller status of %s", sellerID))
	}

	current, ok := o.sellerStatuses[sellerID]
	if !ok {
		return errs.NewObjectNotFoundError("sellerID", sellerID.String())
	}

	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(SellerStatusFacet,
			current.String(), next.String(), fmt.Errorf("order is %s", o.status))
	}

	updated, err := current.TransitionTo(next)
	if err != nil {
		return err
	}

	o.sellerStatuses[sellerID] = updated
	o.appendChange(SellerStatusFacet, updated.String(), actor)
	return nil
}

// AdvanceOverall moves the overall status forward. It is invoked by the
// status aggregation policy after seller updates and by delivery completion;
// direct use is reserved for admin overrides at the application boundary.
func (o *Order) AdvanceOverall(next Status, actor kernel.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	updated, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = updated
	o.appendChange(StatusFacet, updated.String(), actor)
	return nil
}

// Cancel moves the order to Cancelled. The buyer may cancel only while the
// order is still Pending; an admin may cancel from any non-terminal state.
// Cancellation is a status value, never a physical deletion.
func (o *Order) Cancel(actor kernel.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	switch {
	case actor.Is(kernel.RoleAdmin):
		// any non-terminal state; TransitionTo enforces terminality
	case actor.Is(kernel.RoleBuyer) && actor.ID().IsEqual(o.buyerID):
		if o.status != Pending {
			return errs.NewUnauthorizedErrorWithCause(actor.String(), "cancel the order",
				fmt.Errorf("buyer may cancel only while Pending, order is %s", o.status))
		}
	default:
		return errs.NewUnauthorizedError(actor.String(), "cancel the order")
	}

	updated, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = updated
	o.appendChange(StatusFacet, updated.String(), actor)
	return nil
}

// AssignDeliveryPerson assigns a courier (admin only), moving the delivery
// status from Pending to Assigned and recording the courier on the order.
func (o *Order) AssignDeliveryPerson(courierID kernel.UUID, actor kernel.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}

	if !actor.Is(kernel.RoleAdmin) {
		return errs.NewUnauthorizedError(actor.String(), "assign a delivery person")
	}
	if o.status == Cancelled {
		return errs.NewInvalidTransitionErrorWithCause(DeliveryStatusFacet,
			o.deliveryStatus.String(), DeliveryAssigned.String(),
			fmt.Errorf("order is %s", o.status))
	}

	updated, err := o.deliveryStatus.TransitionTo(DeliveryAssigned)
	if err != nil {
		return err
	}

	o.deliveryStatus = updated
	o.deliveryPersonID = &courierID
	o.appendChange(DeliveryStatusFacet, updated.String(), actor)
	return nil
}

// AdvanceDelivery moves the delivery status one step forward. Only the
// assigned courier may advance it, and only in strict sequence. Reaching
// Delivered completes the order: deliveredAt is set, the overall status is
// forced to Delivered regardless of seller aggregation, and every item not
// yet reviewed becomes reviewable.
func (o *Order) AdvanceDelivery(next DeliveryStatus, actor kernel.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if o.deliveryPersonID == nil {
		return errs.NewInvalidTransitionErrorWithCause(DeliveryStatusFacet,
			o.deliveryStatus.String(), next.String(),
			errors.New("no delivery person assigned"))
	}
	if !actor.Is(kernel.RoleDelivery) || !actor.ID().IsEqual(*o.deliveryPersonID) {
		return errs.NewUnauthorizedError(actor.String(), "advance the delivery status")
	}
	if o.status == Cancelled {
		return errs.NewInvalidTransitionErrorWithCause(DeliveryStatusFacet,
			o.deliveryStatus.String(), next.String(), fmt.Errorf("order is %s", o.status))
	}

	updated, err := o.deliveryStatus.TransitionTo(next)
	if err != nil {
		return err
	}

	o.deliveryStatus = updated
	o.appendChange(DeliveryStatusFacet, updated.String(), actor)

	if updated == DeliveryDelivered {
		o.completeDelivery(actor)
	}
	return nil
}

// completeDelivery applies the side effects of reaching Delivered. Delivery
// completion overrides seller aggregation: the overall status jumps to
// Delivered from wherever it stood.
func (o *Order) completeDelivery(actor kernel.Actor) {
	now := time.Now().UTC()
	o.deliveredAt = &now

	if updated, err := o.status.TransitionTo(Delivered); err == nil {
		o.status = updated
		o.appendChange(StatusFacet, updated.String(), actor)
	}

	for i := range o.items {
		if !o.items[i].reviewed {
			o.items[i].canReview = true
		}
	}
}

// AttachPaymentProof records the buyer's uploaded payment-proof image for
// one seller's share of the order. The image is recorded, not validated:
// payment settlement is out of scope.
func (o *Order) AttachPaymentProof(sellerID kernel.UUID, imageRef string, actor kernel.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if imageRef == "" {
		return errs.NewValueIsRequiredError("imageRef")
	}

	isBuyer := actor.Is(kernel.RoleBuyer) && actor.ID().IsEqual(o.buyerID)
	if !isBuyer && !actor.Is(kernel.RoleAdmin) {
		return errs.NewUnauthorizedError(actor.String(), "attach a payment proof")
	}

	if _, ok := o.sellerStatuses[sellerID]; !ok {
		return errs.NewObjectNotFoundError("sellerID", sellerID.String())
	}

	o.proofOfPayments[sellerID] = imageRef
	return nil
}

// AttachDeliveryProof records the courier's completion note and images.
// Allowed only for the assigned courier once the delivery is Delivered.
func (o *Order) AttachDeliveryProof(note string, images []string, actor kernel.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if o.deliveryPersonID == nil || !actor.Is(kernel.RoleDelivery) || !actor.ID().IsEqual(*o.deliveryPersonID) {
		return errs.NewUnauthorizedError(actor.String(), "attach a delivery proof")
	}
	if o.deliveryStatus != DeliveryDelivered {
		return errs.NewInvalidTransitionErrorWithCause(DeliveryStatusFacet,
			o.deliveryStatus.String(), DeliveryDelivered.String(),
			errors.New("delivery proof requires a delivered order"))
	}

	o.proofOfDelivery = note
	o.proofOfDeliveryImages = append([]string(nil), images...)
	return nil
}

// MarkItemReviewed records that the buyer reviewed one item. Requires the
// item to be reviewable, which only delivery completion enables.
func (o *Order) MarkItemReviewed(productID kernel.UUID, actor kernel.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if !actor.Is(kernel.RoleBuyer) || !actor.ID().IsEqual(o.buyerID) {
		return errs.NewUnauthorizedError(actor.String(), "review an item")
	}

	for i := range o.items {
		if !o.items[i].productID.IsEqual(productID) {
			continue
		}
		if !o.items[i].canReview {
			return errs.NewValueIsInvalidError("item is not reviewable before delivery")
		}
		o.items[i].reviewed = true
		return nil
	}

	return errs.NewObjectNotFoundError("productID", productID.String())
}

func (o *Order) actorOwnsSellerEntry(actor kernel.Actor, sellerID kernel.UUID) bool {
	if actor.Is(kernel.RoleAdmin) {
		return true
	}
	return actor.Is(kernel.RoleSeller) && actor.ID().IsEqual(sellerID)
}

// appendChange appends one history entry. It is called exactly once per
// accepted transition, after the facet mutation, so a successful transition
// and its history entry are one unit of work.
func (o *Order) appendChange(facet, status string, actor kernel.Actor) {
	o.history = append(o.history, StatusChange{
		Facet:  facet,
		Status: status,
		At:     time.Now().UTC(),
		By:     actor,
	})
}
