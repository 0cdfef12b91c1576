// Package kernel provides core domain primitives shared by every aggregate
// in the marketplace order system.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Role / Actor: the four actor roles (buyer, seller, delivery, admin) and a
//     role-tagged identity used both as status-history actor and as
//     notification recipient
//   - GeoPoint: resolved coordinates for a delivery address
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// safe for concurrent use.
package kernel
