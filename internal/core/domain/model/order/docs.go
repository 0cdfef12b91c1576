// Package order contains the Order aggregate: the central document of the
// marketplace, spanning one buyer, several independent sellers, and one
// delivery courier.
//
// The aggregate tracks three status facets that advance independently:
//   - Status: the buyer-facing overall lifecycle state
//   - SellerStatus: one fulfillment state per distinct seller in the items
//   - DeliveryStatus: the courier-facing transit state
//
// The aggregate is the single authority for legal transitions on all three
// facets and for the per-field write authority of the four actor roles.
// Every accepted transition appends exactly one entry to the append-only
// status history before the mutating method returns.
package order
