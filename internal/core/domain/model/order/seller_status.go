package order

import (
	"marketplace/internal/pkg/errs"
)

// SellerStatusFacet is the facet name recorded on history entries and
// carried by InvalidTransitionError for seller-status violations.
const SellerStatusFacet = "seller status"

// SellerStatus represents one seller's private fulfillment progress for
// their subset of items in a shared order. Each distinct seller in the
// order holds exactly one entry, independent of every other seller's.
//
// The chain is Pending → Confirmed → Preparing → Ready, with Cancelled
// reachable from any non-terminal state. Ready and Cancelled are terminal.
type SellerStatus int

const (
	// SellerStatusUnknown represents an invalid or undefined seller status.
	SellerStatusUnknown SellerStatus = iota

	// SellerPending is the initial fulfillment state assigned at creation.
	SellerPending

	// SellerConfirmed indicates the seller acknowledged their items.
	SellerConfirmed

	// SellerPreparing indicates the seller is preparing their items.
	SellerPreparing

	// SellerReady indicates the seller's items await pickup. Terminal.
	SellerReady

	// SellerCancelled indicates the seller cancelled their part. Terminal.
	SellerCancelled
)

func getSellerStatusStrings() map[SellerStatus]string {
	return map[SellerStatus]string{
		SellerStatusUnknown: "Unknown",
		SellerPending:       "Pending",
		SellerConfirmed:     "Confirmed",
		SellerPreparing:     "Preparing",
		SellerReady:         "Ready",
		SellerCancelled:     "Cancelled",
	}
}

func getValidSellerStatusStrings() map[SellerStatus]string {
	//nolint:exhaustive // SellerStatusUnknown is intentionally excluded as it's invalid
	return map[SellerStatus]string{
		SellerPending:   "Pending",
		SellerConfirmed: "Confirmed",
		SellerPreparing: "Preparing",
		SellerReady:     "Ready",
		SellerCancelled: "Cancelled",
	}
}

// Validate checks if the SellerStatus value is one of the defined states.
func (s SellerStatus) Validate() error {
	if _, ok := getValidSellerStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("seller status is invalid")
	}
	return nil
}

// String returns the human-readable name of the seller status.
// Implements fmt.Stringer and is safe on any SellerStatus value.
func (s SellerStatus) String() string {
	if str, ok := getSellerStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s SellerStatus) IsTerminal() bool {
	return s == SellerReady || s == SellerCancelled
}

// ProgressRank orders the forward chain for the overall-status aggregation
// rule. Cancelled entries sit outside the chain; the aggregation policy
// excludes them unless every entry is cancelled.
func (s SellerStatus) ProgressRank() int {
	switch s {
	case SellerPending:
		return 0
	case SellerConfirmed:
		return 1
	case SellerPreparing:
		return 2
	case SellerReady:
		return 3
	case SellerStatusUnknown, SellerCancelled:
		return -1
	default:
		return -1
	}
}

// TransitionTo validates a move from s to next and returns the new status.
// Moves must be strictly forward, except Cancelled which is reachable from
// any non-terminal state. The returned error always carries the current and
// the attempted state.
func (s SellerStatus) TransitionTo(next SellerStatus) (SellerStatus, error) {
	if err := next.Validate(); err != nil {
		return 0, errs.NewInvalidTransitionErrorWithCause(SellerStatusFacet, s.String(), next.String(), err)
	}

	if s.IsTerminal() {
		return 0, errs.NewInvalidTransitionError(SellerStatusFacet, s.String(), next.String())
	}

	if next == SellerCancelled {
		return SellerCancelled, nil
	}

	if next.ProgressRank() <= s.ProgressRank() {
		return 0, errs.NewInvalidTransitionError(SellerStatusFacet, s.String(), next.String())
	}

	return next, nil
}
