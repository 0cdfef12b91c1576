// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//
// Validation errors used by domain constructors:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is invalid
//   - ObjectNotFoundError: an object cannot be found
//
// Business rule errors raised by the order lifecycle core:
//   - InvalidTransitionError: a status change violates the state machine;
//     always carries the current and the attempted state
//   - UnauthorizedError: an actor mutates a field outside their ownership
//   - DuplicateIdentifierError: order number collisions exhausted retries
//   - ConflictError: version mismatch under concurrent modification
//   - PersistenceFailureError: the underlying store is unavailable
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
