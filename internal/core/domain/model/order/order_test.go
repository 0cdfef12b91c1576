package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) order.Address {
	t.Helper()
	addr, err := order.NewAddress("Home", "12 Mabini St", "Quezon City", "1100", "+63-900-000-0000")
	require.NoError(t, err)
	return addr
}

func testItem(t *testing.T, sellerID kernel.UUID, price float64, qty int) order.Item {
	t.Helper()
	snapshot, err := order.NewPaymentSnapshot("Acme Goods", "0012-3456", "Acme Inc")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Widget", price, qty, "widget.jpg", sellerID, snapshot)
	require.NoError(t, err)
	return item
}

// twoSellerOrder creates an order with one item each from sellers A and B.
func twoSellerOrder(t *testing.T) (*order.Order, kernel.UUID, kernel.UUID, kernel.UUID) {
	t.Helper()
	buyerID := kernel.NewUUID()
	sellerA := kernel.NewUUID()
	sellerB := kernel.NewUUID()

	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-17172432001230042", buyerID,
		[]order.Item{
			testItem(t, sellerA, 100, 2),
			testItem(t, sellerB, 50, 1),
		},
		30, testAddress(t), "GCash", "leave at the gate",
	)
	require.NoError(t, err)
	return o, buyerID, sellerA, sellerB
}

func actorOf(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func adminActor(t *testing.T) kernel.Actor {
	t.Helper()
	return actorOf(t, kernel.NewUUID(), kernel.RoleAdmin)
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with one seller entry per distinct seller", func(t *testing.T) {
		o, _, sellerA, sellerB := twoSellerOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.DeliveryPending, o.DeliveryStatus())
		assert.Nil(t, o.DeliveryPerson())
		assert.Nil(t, o.DeliveredAt())

		statuses := o.SellerStatuses()
		require.Len(t, statuses, 2)
		assert.Equal(t, order.SellerPending, statuses[sellerA])
		assert.Equal(t, order.SellerPending, statuses[sellerB])
	})

	t.Run("duplicate sellers collapse into a single entry", func(t *testing.T) {
		sellerID := kernel.NewUUID()
		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", kernel.NewUUID(),
			[]order.Item{
				testItem(t, sellerID, 10, 1),
				testItem(t, sellerID, 20, 1),
			},
			0, testAddress(t), "COD", "",
		)

		require.NoError(t, err)
		assert.Len(t, o.SellerStatuses(), 1)
		assert.Len(t, o.Items(), 2)
	})

	t.Run("computes total once from items plus delivery fee", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)

		// 100*2 + 50*1 + 30 fee
		assert.InDelta(t, 280, o.Total(), 1e-9)
	})

	t.Run("history starts with the creation entry", func(t *testing.T) {
		o, buyerID, _, _ := twoSellerOrder(t)

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.StatusFacet, history[0].Facet)
		assert.Equal(t, "Pending", history[0].Status)
		assert.True(t, history[0].By.ID().IsEqual(buyerID))
		assert.True(t, history[0].By.Is(kernel.RoleBuyer))
		assert.False(t, history[0].At.IsZero())
	})

	t.Run("items are not reviewable at creation", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		for _, item := range o.Items() {
			assert.False(t, item.CanReview())
			assert.False(t, item.Reviewed())
		}
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-1", kernel.NewUUID(),
			nil, 0, testAddress(t), "COD", "")

		require.ErrorIs(t, err, order.ErrNoItems)
	})

	t.Run("rejects missing order number", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", kernel.NewUUID(),
			[]order.Item{testItem(t, kernel.NewUUID(), 10, 1)},
			0, testAddress(t), "COD", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative delivery fee", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-1", kernel.NewUUID(),
			[]order.Item{testItem(t, kernel.NewUUID(), 10, 1)},
			-1, testAddress(t), "COD", "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_UpdateSellerStatus(t *testing.T) {
	t.Run("seller advances own entry and history grows by one", func(t *testing.T) {
		o, _, sellerA, _ := twoSellerOrder(t)
		before := len(o.History())

		err := o.UpdateSellerStatus(sellerA, order.SellerConfirmed, actorOf(t, sellerA, kernel.RoleSeller))

		require.NoError(t, err)
		got, _ := o.SellerStatusOf(sellerA)
		assert.Equal(t, order.SellerConfirmed, got)
		assert.Len(t, o.History(), before+1)
	})

	t.Run("seller may not touch another seller's entry", func(t *testing.T) {
		o, _, sellerA, sellerB := twoSellerOrder(t)

		err := o.UpdateSellerStatus(sellerB, order.SellerConfirmed, actorOf(t, sellerA, kernel.RoleSeller))

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		got, _ := o.SellerStatusOf(sellerB)
		assert.Equal(t, order.SellerPending, got)
	})

	t.Run("buyer may not touch seller entries", func(t *testing.T) {
		o, buyerID, sellerA, _ := twoSellerOrder(t)

		err := o.UpdateSellerStatus(sellerA, order.SellerConfirmed, actorOf(t, buyerID, kernel.RoleBuyer))

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("admin may advance any seller entry", func(t *testing.T) {
		o, _, sellerA, _ := twoSellerOrder(t)

		err := o.UpdateSellerStatus(sellerA, order.SellerConfirmed, adminActor(t))

		require.NoError(t, err)
	})

	t.Run("unknown seller is reported as not found", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)

		err := o.UpdateSellerStatus(kernel.NewUUID(), order.SellerConfirmed, adminActor(t))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("rejected transition leaves history untouched", func(t *testing.T) {
		o, _, sellerA, _ := twoSellerOrder(t)
		seller := actorOf(t, sellerA, kernel.RoleSeller)
		require.NoError(t, o.UpdateSellerStatus(sellerA, order.SellerReady, seller))
		before := len(o.History())

		err := o.UpdateSellerStatus(sellerA, order.SellerPreparing, seller)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Len(t, o.History(), before)
	})

	t.Run("rejected on cancelled order", func(t *testing.T) {
		o, _, sellerA, _ := twoSellerOrder(t)
		require.NoError(t, o.Cancel(adminActor(t)))

		err := o.UpdateSellerStatus(sellerA, order.SellerConfirmed, actorOf(t, sellerA, kernel.RoleSeller))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("buyer cancels while pending", func(t *testing.T) {
		o, buyerID, _, _ := twoSellerOrder(t)

		err := o.Cancel(actorOf(t, buyerID, kernel.RoleBuyer))

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("buyer may not cancel after confirmation", func(t *testing.T) {
		o, buyerID, _, _ := twoSellerOrder(t)
		require.NoError(t, o.AdvanceOverall(order.Confirmed, adminActor(t)))

		err := o.Cancel(actorOf(t, buyerID, kernel.RoleBuyer))

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("admin cancels any non-terminal order", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		require.NoError(t, o.AdvanceOverall(order.Preparing, adminActor(t)))

		err := o.Cancel(adminActor(t))

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("seller may not cancel the whole order", func(t *testing.T) {
		o, _, sellerA, _ := twoSellerOrder(t)

		err := o.Cancel(actorOf(t, sellerA, kernel.RoleSeller))

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		require.NoError(t, o.Cancel(adminActor(t)))

		err := o.Cancel(adminActor(t))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_DeliveryLifecycle(t *testing.T) {
	t.Run("full sequence to delivered", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		courierID := kernel.NewUUID()
		courier := actorOf(t, courierID, kernel.RoleDelivery)

		require.NoError(t, o.AssignDeliveryPerson(courierID, adminActor(t)))
		require.NotNil(t, o.DeliveryPerson())
		assert.True(t, o.DeliveryPerson().IsEqual(courierID))

		for _, next := range []order.DeliveryStatus{
			order.DeliveryAccepted, order.DeliveryPickedUp,
			order.DeliveryInTransit, order.DeliveryDelivered,
		} {
			require.NoError(t, o.AdvanceDelivery(next, courier))
		}

		assert.Equal(t, order.DeliveryDelivered, o.DeliveryStatus())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, order.Delivered, o.Status())
		for _, item := range o.Items() {
			assert.True(t, item.CanReview())
		}
	})

	t.Run("skipping a step fails with invalid transition", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		courierID := kernel.NewUUID()
		require.NoError(t, o.AssignDeliveryPerson(courierID, adminActor(t)))

		err := o.AdvanceDelivery(order.DeliveryPickedUp, actorOf(t, courierID, kernel.RoleDelivery))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("advance requires an assigned delivery person", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)

		err := o.AdvanceDelivery(order.DeliveryAccepted, actorOf(t, kernel.NewUUID(), kernel.RoleDelivery))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("only the assigned courier may advance", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		require.NoError(t, o.AssignDeliveryPerson(kernel.NewUUID(), adminActor(t)))

		err := o.AdvanceDelivery(order.DeliveryAccepted, actorOf(t, kernel.NewUUID(), kernel.RoleDelivery))

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("only admin may assign", func(t *testing.T) {
		o, buyerID, _, _ := twoSellerOrder(t)

		err := o.AssignDeliveryPerson(kernel.NewUUID(), actorOf(t, buyerID, kernel.RoleBuyer))

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("assignment is rejected on a cancelled order", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		require.NoError(t, o.Cancel(adminActor(t)))

		err := o.AssignDeliveryPerson(kernel.NewUUID(), adminActor(t))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("deliveredAt is nil until delivered", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		courierID := kernel.NewUUID()
		courier := actorOf(t, courierID, kernel.RoleDelivery)
		require.NoError(t, o.AssignDeliveryPerson(courierID, adminActor(t)))
		require.NoError(t, o.AdvanceDelivery(order.DeliveryAccepted, courier))
		require.NoError(t, o.AdvanceDelivery(order.DeliveryPickedUp, courier))
		require.NoError(t, o.AdvanceDelivery(order.DeliveryInTransit, courier))

		assert.Nil(t, o.DeliveredAt())

		require.NoError(t, o.AdvanceDelivery(order.DeliveryDelivered, courier))
		assert.NotNil(t, o.DeliveredAt())
	})
}

func TestOrder_HistoryGrowth(t *testing.T) {
	t.Run("every accepted transition appends exactly one entry", func(t *testing.T) {
		o, _, sellerA, sellerB := twoSellerOrder(t)
		courierID := kernel.NewUUID()
		courier := actorOf(t, courierID, kernel.RoleDelivery)

		steps := []struct {
			name    string
			act     func() error
			entries int
		}{
			{"seller A ready", func() error {
				return o.UpdateSellerStatus(sellerA, order.SellerReady, actorOf(t, sellerA, kernel.RoleSeller))
			}, 1},
			{"seller B ready", func() error {
				return o.UpdateSellerStatus(sellerB, order.SellerReady, actorOf(t, sellerB, kernel.RoleSeller))
			}, 1},
			{"assign courier", func() error {
				return o.AssignDeliveryPerson(courierID, adminActor(t))
			}, 1},
			{"accept", func() error { return o.AdvanceDelivery(order.DeliveryAccepted, courier) }, 1},
			{"pick up", func() error { return o.AdvanceDelivery(order.DeliveryPickedUp, courier) }, 1},
			{"in transit", func() error { return o.AdvanceDelivery(order.DeliveryInTransit, courier) }, 1},
			// Delivery completion also forces the overall status, so the
			// final courier step records both facet changes.
			{"delivered", func() error { return o.AdvanceDelivery(order.DeliveryDelivered, courier) }, 2},
		}

		before := len(o.History())
		for _, step := range steps {
			require.NoError(t, step.act(), step.name)
			after := len(o.History())
			assert.Equal(t, before+step.entries, after, step.name)
			before = after
		}
	})

	t.Run("history length never decreases", func(t *testing.T) {
		o, _, sellerA, _ := twoSellerOrder(t)
		lengths := []int{len(o.History())}

		_ = o.UpdateSellerStatus(sellerA, order.SellerConfirmed, actorOf(t, sellerA, kernel.RoleSeller))
		lengths = append(lengths, len(o.History()))
		_ = o.UpdateSellerStatus(sellerA, order.SellerPending, actorOf(t, sellerA, kernel.RoleSeller)) // rejected
		lengths = append(lengths, len(o.History()))

		for i := 1; i < len(lengths); i++ {
			assert.GreaterOrEqual(t, lengths[i], lengths[i-1])
		}
	})
}

func TestOrder_Reviews(t *testing.T) {
	deliveredOrder := func(t *testing.T) (*order.Order, kernel.UUID) {
		o, buyerID, _, _ := twoSellerOrder(t)
		courierID := kernel.NewUUID()
		courier := actorOf(t, courierID, kernel.RoleDelivery)
		require.NoError(t, o.AssignDeliveryPerson(courierID, adminActor(t)))
		for _, next := range []order.DeliveryStatus{
			order.DeliveryAccepted, order.DeliveryPickedUp,
			order.DeliveryInTransit, order.DeliveryDelivered,
		} {
			require.NoError(t, o.AdvanceDelivery(next, courier))
		}
		return o, buyerID
	}

	t.Run("review before delivery is rejected", func(t *testing.T) {
		o, buyerID, _, _ := twoSellerOrder(t)
		productID := o.Items()[0].ProductID()

		err := o.MarkItemReviewed(productID, actorOf(t, buyerID, kernel.RoleBuyer))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("buyer reviews a delivered item once", func(t *testing.T) {
		o, buyerID := deliveredOrder(t)
		productID := o.Items()[0].ProductID()

		require.NoError(t, o.MarkItemReviewed(productID, actorOf(t, buyerID, kernel.RoleBuyer)))

		item := o.Items()[0]
		assert.True(t, item.Reviewed())
		assert.True(t, item.CanReview(), "canReview never reverts once set")
	})

	t.Run("only the buyer may review", func(t *testing.T) {
		o, _ := deliveredOrder(t)
		productID := o.Items()[0].ProductID()

		err := o.MarkItemReviewed(productID, adminActor(t))

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("unknown product is reported as not found", func(t *testing.T) {
		o, buyerID := deliveredOrder(t)

		err := o.MarkItemReviewed(kernel.NewUUID(), actorOf(t, buyerID, kernel.RoleBuyer))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrder_Proofs(t *testing.T) {
	t.Run("buyer attaches payment proof per seller", func(t *testing.T) {
		o, buyerID, sellerA, _ := twoSellerOrder(t)

		err := o.AttachPaymentProof(sellerA, "uploads/proof-a.jpg", actorOf(t, buyerID, kernel.RoleBuyer))

		require.NoError(t, err)
		assert.Equal(t, "uploads/proof-a.jpg", o.ProofOfPayments()[sellerA])
	})

	t.Run("payment proof for unknown seller is rejected", func(t *testing.T) {
		o, buyerID, _, _ := twoSellerOrder(t)

		err := o.AttachPaymentProof(kernel.NewUUID(), "x.jpg", actorOf(t, buyerID, kernel.RoleBuyer))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("delivery proof requires delivered status", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		courierID := kernel.NewUUID()
		require.NoError(t, o.AssignDeliveryPerson(courierID, adminActor(t)))

		err := o.AttachDeliveryProof("left at door", []string{"pod.jpg"}, actorOf(t, courierID, kernel.RoleDelivery))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("assigned courier attaches delivery proof after completion", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		courierID := kernel.NewUUID()
		courier := actorOf(t, courierID, kernel.RoleDelivery)
		require.NoError(t, o.AssignDeliveryPerson(courierID, adminActor(t)))
		for _, next := range []order.DeliveryStatus{
			order.DeliveryAccepted, order.DeliveryPickedUp,
			order.DeliveryInTransit, order.DeliveryDelivered,
		} {
			require.NoError(t, o.AdvanceDelivery(next, courier))
		}

		err := o.AttachDeliveryProof("handed to buyer", []string{"pod-1.jpg", "pod-2.jpg"}, courier)

		require.NoError(t, err)
		assert.Equal(t, "handed to buyer", o.ProofOfDelivery())
		assert.Len(t, o.ProofOfDeliveryImages(), 2)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round-trips full aggregate state", func(t *testing.T) {
		o, _, sellerA, _ := twoSellerOrder(t)
		require.NoError(t, o.UpdateSellerStatus(sellerA, order.SellerConfirmed, actorOf(t, sellerA, kernel.RoleSeller)))

		restored, err := order.RestoreOrder(
			o.ID(), o.Number(), o.BuyerID(), o.Items(), o.Total(), o.Status(),
			o.SellerStatuses(), o.DeliveryStatus(), o.DeliveryPerson(),
			o.DeliveryFee(), o.Address(), o.PaymentMethod(), o.SpecialInstructions(),
			o.ProofOfPayments(), o.ProofOfDelivery(), o.ProofOfDeliveryImages(),
			o.DeliveredAt(), o.History(), o.Version(),
		)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, o.Status(), restored.Status())
		assert.Equal(t, o.SellerStatuses(), restored.SellerStatuses())
		assert.Len(t, restored.History(), len(o.History()))
	})

	t.Run("rejects empty history", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)

		_, err := order.RestoreOrder(
			o.ID(), o.Number(), o.BuyerID(), o.Items(), o.Total(), o.Status(),
			o.SellerStatuses(), o.DeliveryStatus(), o.DeliveryPerson(),
			o.DeliveryFee(), o.Address(), o.PaymentMethod(), o.SpecialInstructions(),
			o.ProofOfPayments(), "", nil, nil, nil, 1,
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects deliveredAt without delivered status", func(t *testing.T) {
		o, _, _, _ := twoSellerOrder(t)
		now := o.History()[0].At

		_, err := order.RestoreOrder(
			o.ID(), o.Number(), o.BuyerID(), o.Items(), o.Total(), o.Status(),
			o.SellerStatuses(), o.DeliveryStatus(), o.DeliveryPerson(),
			o.DeliveryFee(), o.Address(), o.PaymentMethod(), o.SpecialInstructions(),
			o.ProofOfPayments(), "", nil, &now, o.History(), 1,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}
