package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("new UUID is valid and unique", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		require.NoError(t, id1.Validate())
		assert.False(t, id1.IsEqual(id2))
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.UUID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})

	t.Run("round-trips through string", func(t *testing.T) {
		id := kernel.NewUUID()

		parsed, err := kernel.UUIDFromString(id.String())

		require.NoError(t, err)
		assert.True(t, id.IsEqual(parsed))
	})

	t.Run("rejects malformed string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("round-trips through bytes", func(t *testing.T) {
		id := kernel.NewUUID()
		raw := id.Bytes()

		parsed, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, id.IsEqual(parsed))
	})
}

func TestRole(t *testing.T) {
	t.Run("valid roles pass validation", func(t *testing.T) {
		for _, role := range kernel.AllRoles() {
			require.NoError(t, role.Validate())
		}
	})

	t.Run("unknown role fails validation", func(t *testing.T) {
		err := kernel.RoleUnknown.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("string representations", func(t *testing.T) {
		assert.Equal(t, "Buyer", kernel.RoleBuyer.String())
		assert.Equal(t, "Seller", kernel.RoleSeller.String())
		assert.Equal(t, "Delivery", kernel.RoleDelivery.String())
		assert.Equal(t, "Admin", kernel.RoleAdmin.String())
		assert.Equal(t, "Unknown", kernel.Role(99).String())
	})

	t.Run("AllRoles lists exactly the four actor kinds", func(t *testing.T) {
		assert.Len(t, kernel.AllRoles(), 4)
	})
}

func TestActor(t *testing.T) {
	t.Run("creates valid actor", func(t *testing.T) {
		id := kernel.NewUUID()

		actor, err := kernel.NewActor(id, kernel.RoleSeller)

		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.True(t, actor.ID().IsEqual(id))
		assert.True(t, actor.Is(kernel.RoleSeller))
		assert.False(t, actor.Is(kernel.RoleAdmin))
	})

	t.Run("rejects zero UUID", func(t *testing.T) {
		var id kernel.UUID

		_, err := kernel.NewActor(id, kernel.RoleBuyer)

		require.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleUnknown)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var actor kernel.Actor

		require.Error(t, actor.Validate())
	})

	t.Run("equality requires same id and role", func(t *testing.T) {
		id := kernel.NewUUID()
		seller, _ := kernel.NewActor(id, kernel.RoleSeller)
		sameSeller, _ := kernel.NewActor(id, kernel.RoleSeller)
		buyer, _ := kernel.NewActor(id, kernel.RoleBuyer)

		assert.True(t, seller.IsEqual(sameSeller))
		assert.False(t, seller.IsEqual(buyer))
	})
}

func TestGeoPoint(t *testing.T) {
	t.Run("creates valid point", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(14.5995, 120.9842, "Manila")

		require.NoError(t, err)
		assert.InDelta(t, 14.5995, p.Lat(), 1e-9)
		assert.InDelta(t, 120.9842, p.Lon(), 1e-9)
		assert.Equal(t, "Manila", p.DisplayName())
	})

	t.Run("rejects out-of-range latitude", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 0, "")
		require.Error(t, err)
	})

	t.Run("rejects out-of-range longitude", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -181, "")
		require.Error(t, err)
	})
}
