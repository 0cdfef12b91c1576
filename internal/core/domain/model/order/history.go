package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// StatusChange is one entry of the append-only status history: which facet
// moved, the value it moved to, when, and by whom. The history is the
// authoritative audit trail of an order; entries are never mutated or
// pruned, and the history holds at least the creation entry at all times.
type StatusChange struct {
	Facet  string
	Status string
	At     time.Time
	By     kernel.Actor
}
