package order

import (
	"marketplace/internal/pkg/errs"
)

// DeliveryStatusFacet is the facet name recorded on history entries and
// carried by InvalidTransitionError for delivery-status violations.
const DeliveryStatusFacet = "delivery status"

// DeliveryStatus represents the courier-facing transit state of an order.
//
// The chain is strictly sequential with no skips:
//
//	Pending → Assigned → Accepted → Picked Up → In Transit → Delivered
//
// Every state from Assigned onward requires a delivery person to be set on
// the order. DeliveryDelivered is terminal.
type DeliveryStatus int

const (
	// DeliveryStatusUnknown represents an invalid or undefined delivery status.
	DeliveryStatusUnknown DeliveryStatus = iota

	// DeliveryPending means no courier has been assigned yet.
	DeliveryPending

	// DeliveryAssigned means a courier has been assigned but has not accepted.
	DeliveryAssigned

	// DeliveryAccepted means the assigned courier accepted the job.
	DeliveryAccepted

	// DeliveryPickedUp means the courier collected the items.
	DeliveryPickedUp

	// DeliveryInTransit means the courier is en route to the buyer.
	DeliveryInTransit

	// DeliveryDelivered means the courier completed delivery. Terminal.
	DeliveryDelivered
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryStatusUnknown: "Unknown",
		DeliveryPending:       "Pending",
		DeliveryAssigned:      "Assigned",
		DeliveryAccepted:      "Accepted",
		DeliveryPickedUp:      "Picked Up",
		DeliveryInTransit:     "In Transit",
		DeliveryDelivered:     "Delivered",
	}
}

func getValidDeliveryStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // DeliveryStatusUnknown is intentionally excluded as it's invalid
	return map[DeliveryStatus]string{
		DeliveryPending:   "Pending",
		DeliveryAssigned:  "Assigned",
		DeliveryAccepted:  "Accepted",
		DeliveryPickedUp:  "Picked Up",
		DeliveryInTransit: "In Transit",
		DeliveryDelivered: "Delivered",
	}
}

// Validate checks if the DeliveryStatus value is one of the defined states.
func (s DeliveryStatus) Validate() error {
	if _, ok := getValidDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("delivery status is invalid")
	}
	return nil
}

// String returns the human-readable name of the delivery status.
// Implements fmt.Stringer and is safe on any DeliveryStatus value.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryDelivered
}

// TransitionTo validates a move from s to next and returns the new status.
// Delivery transitions are strictly sequential: skipping a step (e.g.
// Assigned directly to Picked Up) is rejected. The returned error always
// carries the current and the attempted state.
func (s DeliveryStatus) TransitionTo(next DeliveryStatus) (DeliveryStatus, error) {
	if err := next.Validate(); err != nil {
		return 0, errs.NewInvalidTransitionErrorWithCause(DeliveryStatusFacet, s.String(), next.String(), err)
	}

	if s.IsTerminal() || next != s+1 {
		return 0, errs.NewInvalidTransitionError(DeliveryStatusFacet, s.String(), next.String())
	}

	return next, nil
}
