package order

import (
	"marketplace/internal/pkg/errs"
)

// StatusFacet is the facet name recorded on history entries and carried by
// InvalidTransitionError for overall-status violations.
const StatusFacet = "status"

// Status represents the buyer-facing overall lifecycle state of an order.
//
// State transitions move strictly forward through
//
//	Pending → Confirmed → Preparing → Out for Delivery → Delivered
//
// with Cancelled reachable from any non-terminal state. Forward jumps are
// legal (read-side aggregation may promote Pending directly to Preparing);
// backward moves are not. Delivered and Cancelled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status assigned at creation.
	Pending

	// Confirmed indicates every seller has acknowledged the order.
	Confirmed

	// Preparing indicates every seller is preparing or has finished
	// preparing their items.
	Preparing

	// OutForDelivery indicates the courier has the order in transit.
	OutForDelivery

	// Delivered indicates the courier completed delivery. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "Unknown",
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Preparing:      "Preparing",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Preparing:      "Preparing",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status is invalid")
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// progressRank orders the forward chain for regression checks.
// Cancelled sits outside the chain and has no rank.
func (s Status) progressRank() int {
	switch s {
	case Pending:
		return 0
	case Confirmed:
		return 1
	case Preparing:
		return 2
	case OutForDelivery:
		return 3
	case Delivered:
		return 4
	case StatusUnknown, Cancelled:
		return -1
	default:
		return -1
	}
}

// TransitionTo validates a move from s to next and returns the new status.
//
// Rules:
//   - terminal states (Delivered, Cancelled) admit no further moves
//   - Cancelled is reachable from any non-terminal state
//   - otherwise next must be strictly later in the forward chain;
//     the overall status never regresses
//
// The returned error always carries the current and the attempted state.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, errs.NewInvalidTransitionErrorWithCause(StatusFacet, s.String(), next.String(), err)
	}

	if s.IsTerminal() {
		return 0, errs.NewInvalidTransitionError(StatusFacet, s.String(), next.String())
	}

	if next == Cancelled {
		return Cancelled, nil
	}

	if next.progressRank() <= s.progressRank() {
		return 0, errs.NewInvalidTransitionError(StatusFacet, s.String(), next.String())
	}

	return next, nil
}
