package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role identifies which of the four actor kinds an identity belongs to.
// The role is a tag, not inherited behavior: buyers, sellers, delivery
// people, and admins hold write access to disjoint subsets of an order's
// fields, and notifications are addressed to a (role, id) pair.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleBuyer is the customer who placed the order.
	RoleBuyer

	// RoleSeller is a merchant fulfilling a subset of the order's items.
	RoleSeller

	// RoleDelivery is the courier moving the order.
	RoleDelivery

	// RoleAdmin is a marketplace operator.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleBuyer:    "Buyer",
		RoleSeller:   "Seller",
		RoleDelivery: "Delivery",
		RoleAdmin:    "Admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleBuyer:    "Buyer",
		RoleSeller:   "Seller",
		RoleDelivery: "Delivery",
		RoleAdmin:    "Admin",
	}
}

// AllRoles returns the four valid roles. Used for defensive cache
// invalidation, where every role variant of an identity is cleared.
func AllRoles() []Role {
	return []Role{RoleBuyer, RoleSeller, RoleDelivery, RoleAdmin}
}

// Validate checks if the Role value is one of the four valid roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Implements fmt.Stringer and is safe on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// ErrActorIsNotConstructed is returned when validating a zero-value Actor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"actor must be created via NewActor")

// Actor is a role-tagged identity. It appears in two places: as the party
// recorded on every status-history entry, and as the recipient of a
// notification. The zero value is invalid; use NewActor.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates a validated Actor from an identity and its role.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identity.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's role tag.
func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor has the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

// IsEqual compares two actors by identity and role.
func (a Actor) IsEqual(other Actor) bool {
	return a.id.IsEqual(other.id) && a.role == other.role
}

// String renders the actor as "Role id", e.g. "Seller 3f2a...".
func (a Actor) String() string {
	return fmt.Sprintf("%s %s", a.role, a.id)
}

// Validate checks that the actor was properly constructed.
func (a Actor) Validate() error {
	if a.role == RoleUnknown {
		return ErrActorIsNotConstructed
	}
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
