package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel for status changes that violate
	// the order state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized is the sentinel for actors mutating fields outside
	// their ownership.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateIdentifier is the sentinel for identifier collisions that
	// exhausted the retry budget.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrConflict is the sentinel for concurrent modification detected via
	// version mismatch.
	ErrConflict = errors.New("concurrent modification conflict")

	// ErrPersistenceFailure is the sentinel for an unavailable or failing store.
	ErrPersistenceFailure = errors.New("persistence failure")
)

// InvalidTransitionError reports a rejected status change. It always names
// the facet being transitioned plus the current and the attempted state so
// callers can tell "already delivered" from "not yet assigned".
type InvalidTransitionError struct {
	Facet string
	From  string
	To    string
	Cause error
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// facet ("status", "seller status", "delivery status") and state pair.
func NewInvalidTransitionError(facet, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Facet: facet, From: from, To: to}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError wrapping an underlying cause.
func NewInvalidTransitionErrorWithCause(facet, from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{Facet: facet, From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s cannot move from %s to %s (cause: %s)",
			ErrInvalidTransition, e.Facet, e.From, e.To, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidTransition, e.Facet, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnauthorizedError reports an actor attempting an action on a field they
// do not own, e.g. one seller touching another seller's fulfillment entry.
type UnauthorizedError struct {
	Actor  string
	Action string
	Cause  error
}

// NewUnauthorizedError creates an UnauthorizedError for the actor and attempted action.
func NewUnauthorizedError(actor, action string) *UnauthorizedError {
	return &UnauthorizedError{Actor: actor, Action: action}
}

// NewUnauthorizedErrorWithCause creates an UnauthorizedError wrapping an underlying cause.
func NewUnauthorizedErrorWithCause(actor, action string, cause error) *UnauthorizedError {
	return &UnauthorizedError{Actor: actor, Action: action, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s may not %s (cause: %s)",
			ErrUnauthorized, e.Actor, e.Action, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s may not %s", ErrUnauthorized, e.Actor, e.Action))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// DuplicateIdentifierError reports that identifier generation collided with
// an existing value and the bounded retry budget was exhausted.
type DuplicateIdentifierError struct {
	Identifier string
	Attempts   int
	Cause      error
}

// NewDuplicateIdentifierError creates a DuplicateIdentifierError for the
// colliding identifier and the number of attempts made.
func NewDuplicateIdentifierError(identifier string, attempts int) *DuplicateIdentifierError {
	return &DuplicateIdentifierError{Identifier: identifier, Attempts: attempts}
}

// NewDuplicateIdentifierErrorWithCause creates a DuplicateIdentifierError wrapping an underlying cause.
func NewDuplicateIdentifierErrorWithCause(identifier string, attempts int, cause error) *DuplicateIdentifierError {
	return &DuplicateIdentifierError{Identifier: identifier, Attempts: attempts, Cause: cause}
}

func (e *DuplicateIdentifierError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s after %d attempts (cause: %s)",
			ErrDuplicateIdentifier, e.Identifier, e.Attempts, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s after %d attempts",
		ErrDuplicateIdentifier, e.Identifier, e.Attempts))
}

func (e *DuplicateIdentifierError) Unwrap() error {
	return ErrDuplicateIdentifier
}

// ConflictError reports a lost optimistic-concurrency race: the aggregate
// was modified by another writer between read and write.
type ConflictError struct {
	ObjectID string
	Version  int
	Cause    error
}

// NewConflictError creates a ConflictError for the object and the version the writer held.
func NewConflictError(objectID string, version int) *ConflictError {
	return &ConflictError{ObjectID: objectID, Version: version}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(objectID string, version int, cause error) *ConflictError {
	return &ConflictError{ObjectID: objectID, Version: version, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s at version %d (cause: %s)",
			ErrConflict, e.ObjectID, e.Version, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s at version %d", ErrConflict, e.ObjectID, e.Version))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// PersistenceFailureError reports that the underlying store failed or was
// unavailable while executing the named operation.
type PersistenceFailureError struct {
	Op    string
	Cause error
}

// NewPersistenceFailureError creates a PersistenceFailureError for the failed operation.
func NewPersistenceFailureError(op string) *PersistenceFailureError {
	return &PersistenceFailureError{Op: op}
}

// NewPersistenceFailureErrorWithCause creates a PersistenceFailureError wrapping an underlying cause.
func NewPersistenceFailureErrorWithCause(op string, cause error) *PersistenceFailureError {
	return &PersistenceFailureError{Op: op, Cause: cause}
}

func (e *PersistenceFailureError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrPersistenceFailure, e.Op, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrPersistenceFailure, e.Op))
}

func (e *PersistenceFailureError) Unwrap() error {
	return ErrPersistenceFailure
}
