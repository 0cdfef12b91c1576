// Package services provides domain services that orchestrate business rules
// spanning more than one part of an aggregate. It implements logic that does
// not naturally belong to a single entity or value object.
//
// The package includes:
//   - PromotionPolicy / MinimumProgressPolicy: the rule deriving the overall
//     order status from the independent per-seller fulfillment entries
//   - StatusAggregator: applies a policy's derivation to an order after a
//     seller-status change
package services
