package services

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// PromotionPolicy derives the buyer-facing overall status from the
// independent per-seller fulfillment entries. The exact promotion rule is
// deliberately pluggable: the aggregator takes whichever policy the
// composition root wires in, and the default below pins today's behavior.
type PromotionPolicy interface {
	// Derive maps the seller entries onto the overall enumeration.
	// It is a pure read-side rule and must not mutate anything.
	Derive(statuses map[kernel.UUID]order.SellerStatus) order.Status
}

// MinimumProgressPolicy is the default promotion rule: the overall status is
// the minimum progress rank across all seller entries, mapped onto the
// overall enumeration. Cancelled entries are excluded from the minimum, so
// one seller bailing out does not hold the order back. When every entry is
// cancelled the whole order is cancelled.
//
// Seller Ready caps at overall Preparing: Out for Delivery and beyond are
// driven by the delivery facet, never by seller aggregation.
type MinimumProgressPolicy struct{}

// NewMinimumProgressPolicy creates the default promotion policy.
func NewMinimumProgressPolicy() MinimumProgressPolicy {
	return MinimumProgressPolicy{}
}

// Derive implements PromotionPolicy.
func (MinimumProgressPolicy) Derive(statuses map[kernel.UUID]order.SellerStatus) order.Status {
	if len(statuses) == 0 {
		return order.Pending
	}

	minRank := -1
	active := 0
	for _, s := range statuses {
		if s == order.SellerCancelled {
			continue
		}
		active++
		if rank := s.ProgressRank(); minRank == -1 || rank < minRank {
			minRank = rank
		}
	}

	if active == 0 {
		return order.Cancelled
	}

	switch minRank {
	case order.SellerPending.ProgressRank():
		return order.Pending
	case order.SellerConfirmed.ProgressRank():
		return order.Confirmed
	default:
		// Preparing and Ready both map to overall Preparing.
		return order.Preparing
	}
}

// StatusAggregator reconciles an order's overall status with its seller
// entries after a seller-status change. It is invoked by the application
// layer once the seller transition has been accepted.
type StatusAggregator struct {
	policy PromotionPolicy
}

// NewStatusAggregator creates an aggregator with the given policy.
// A nil policy falls back to MinimumProgressPolicy.
func NewStatusAggregator(policy PromotionPolicy) StatusAggregator {
	if policy == nil {
		policy = NewMinimumProgressPolicy()
	}
	return StatusAggregator{policy: policy}
}

// Reconcile derives the overall status and applies it to the order when it
// advances the order (or cancels it, when every seller cancelled). A
// derivation equal to or behind the current status is a no-op: the overall
// status never regresses through aggregation.
//
// Returns true when the overall status changed, so callers know whether to
// fan out a buyer notification.
func (a StatusAggregator) Reconcile(o *order.Order, actor kernel.Actor) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	derived := a.policy.Derive(o.SellerStatuses())
	if derived == o.Status() {
		return false, nil
	}

	if derived == order.Cancelled {
		if o.Status().IsTerminal() {
			return false, nil
		}
		if err := o.AdvanceOverall(order.Cancelled, actor); err != nil {
			return false, err
		}
		return true, nil
	}

	// Ignore derivations that do not advance the order.
	if _, err := o.Status().TransitionTo(derived); err != nil {
		return false, nil
	}

	if err := o.AdvanceOverall(derived, actor); err != nil {
		return false, err
	}
	return true, nil
}
