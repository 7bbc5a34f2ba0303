package delivery_test

import (
	"testing"
	"time"

	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	return d
}

func TestNewDelivery(t *testing.T) {
	t.Run("should create pending standalone delivery", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()
		scheduled := time.Now()

		d, err := delivery.NewDelivery(id, orderID, scheduled)

		require.NoError(t, err)
		assert.True(t, d.ID().IsEqual(id))
		assert.True(t, d.OrderID().IsEqual(orderID))
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Nil(t, d.DriverID())
		assert.Nil(t, d.VehicleID())
		assert.Nil(t, d.DeliveryTime())
		assert.IsType(t, delivery.Standalone{}, d.Binding())
		assert.NoError(t, d.Validate())
	})

	t.Run("should reject zero scheduled date", func(t *testing.T) {
		_, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), time.Time{})
		assert.Error(t, err)
	})

	t.Run("zero value delivery fails validation", func(t *testing.T) {
		var d delivery.Delivery
		assert.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
	})
}

func TestDelivery_Assign(t *testing.T) {
	t.Run("assigns driver and vehicle while pending", func(t *testing.T) {
		d := newPendingDelivery(t)
		driverID := kernel.NewUUID()
		vehicleID := kernel.NewUUID()

		require.NoError(t, d.Assign(driverID, vehicleID))

		require.NotNil(t, d.DriverID())
		assert.True(t, d.DriverID().IsEqual(driverID))
		require.NotNil(t, d.VehicleID())
		assert.True(t, d.VehicleID().IsEqual(vehicleID))
	})

	t.Run("refuses assignment after start", func(t *testing.T) {
		d := newPendingDelivery(t)
		require.NoError(t, d.Assign(kernel.NewUUID(), kernel.NewUUID()))
		require.NoError(t, d.Start())

		err := d.Assign(kernel.NewUUID(), kernel.NewUUID())

		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestDelivery_BindToStop(t *testing.T) {
	d := newPendingDelivery(t)
	stopID := kernel.NewUUID()

	require.NoError(t, d.BindToStop(stopID))

	bound, ok := d.Binding().(delivery.RouteBound)
	require.True(t, ok)
	assert.True(t, bound.StopID().IsEqual(stopID))
}

func TestDelivery_OwnedBy(t *testing.T) {
	d := newPendingDelivery(t)
	driverID := kernel.NewUUID()

	assert.False(t, d.OwnedBy(driverID), "unassigned delivery is owned by nobody")

	require.NoError(t, d.Assign(driverID, kernel.NewUUID()))
	assert.True(t, d.OwnedBy(driverID))
	assert.False(t, d.OwnedBy(kernel.NewUUID()))
}

func TestDelivery_Start(t *testing.T) {
	t.Run("starts a pending delivery", func(t *testing.T) {
		d := newPendingDelivery(t)

		require.NoError(t, d.Start())
		assert.Equal(t, delivery.InTransit, d.Status())
	})

	t.Run("refuses to start twice", func(t *testing.T) {
		d := newPendingDelivery(t)
		require.NoError(t, d.Start())

		assert.ErrorIs(t, d.Start(), errs.ErrConflict)
	})
}

func TestDelivery_CompleteWith(t *testing.T) {
	now := time.Now()

	t.Run("completes with each outcome", func(t *testing.T) {
		cases := map[delivery.Outcome]delivery.Status{
			delivery.OutcomeDelivered:          delivery.Delivered,
			delivery.OutcomePartiallyDelivered: delivery.PartiallyDelivered,
			delivery.OutcomeFailed:             delivery.Failed,
		}

		for outcome, want := range cases {
			d := newPendingDelivery(t)
			require.NoError(t, d.Start())

			require.NoError(t, d.CompleteWith(outcome, now))

			assert.Equal(t, want, d.Status())
			require.NotNil(t, d.DeliveryTime())
			assert.True(t, d.DeliveryTime().Equal(now))
		}
	})

	t.Run("completes straight from pending", func(t *testing.T) {
		d := newPendingDelivery(t)

		require.NoError(t, d.CompleteWith(delivery.OutcomeDelivered, now))
		assert.Equal(t, delivery.Delivered, d.Status())
	})

	t.Run("conflicts on already-terminal delivery", func(t *testing.T) {
		d := newPendingDelivery(t)
		require.NoError(t, d.CompleteWith(delivery.OutcomeDelivered, now))

		err := d.CompleteWith(delivery.OutcomeFailed, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, delivery.Delivered, d.Status(), "status must not change")
	})

	t.Run("rejects invalid outcome", func(t *testing.T) {
		d := newPendingDelivery(t)
		assert.Error(t, d.CompleteWith(delivery.OutcomeUnknown, now))
	})
}

func TestDelivery_Cancel(t *testing.T) {
	t.Run("cancels an open delivery", func(t *testing.T) {
		d := newPendingDelivery(t)

		require.NoError(t, d.Cancel())
		assert.Equal(t, delivery.StatusCancelled, d.Status())
	})

	t.Run("conflicts on terminal delivery", func(t *testing.T) {
		d := newPendingDelivery(t)
		require.NoError(t, d.CompleteWith(delivery.OutcomeFailed, time.Now()))

		assert.ErrorIs(t, d.Cancel(), errs.ErrConflict)
	})
}

func TestDelivery_RecordItems(t *testing.T) {
	t.Run("records items once", func(t *testing.T) {
		d := newPendingDelivery(t)
		items := []*delivery.Item{makeItem(t, 10, 10, 0, delivery.ReasonNone, "")}

		require.NoError(t, d.RecordItems(items))
		assert.Len(t, d.Items(), 1)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		d := newPendingDelivery(t)
		assert.Error(t, d.RecordItems(nil))
	})

	t.Run("conflicts on second recording", func(t *testing.T) {
		d := newPendingDelivery(t)
		items := []*delivery.Item{makeItem(t, 10, 10, 0, delivery.ReasonNone, "")}
		require.NoError(t, d.RecordItems(items))

		assert.ErrorIs(t, d.RecordItems(items), errs.ErrConflict)
	})
}

func TestDelivery_AttachChecklist(t *testing.T) {
	newChecklist := func(t *testing.T, deliveryID kernel.UUID) *delivery.Checklist {
		t.Helper()
		c, err := delivery.NewChecklist(
			kernel.NewUUID(), deliveryID,
			"https://photos.local/sig.png", "I. Petrov", time.Now(), true, "", "",
			[]delivery.Photo{{URL: "https://photos.local/door.jpg", PhotoType: "delivery"}})
		require.NoError(t, err)
		return c
	}

	t.Run("attaches matching checklist", func(t *testing.T) {
		d := newPendingDelivery(t)
		c := newChecklist(t, d.ID())

		require.NoError(t, d.AttachChecklist(c))
		assert.Equal(t, c, d.Checklist())
	})

	t.Run("rejects checklist for another delivery", func(t *testing.T) {
		d := newPendingDelivery(t)
		c := newChecklist(t, kernel.NewUUID())

		assert.Error(t, d.AttachChecklist(c))
	})
}

func TestChecklist(t *testing.T) {
	t.Run("requires signature and signer", func(t *testing.T) {
		_, err := delivery.NewChecklist(
			kernel.NewUUID(), kernel.NewUUID(), "", "I. Petrov", time.Now(), true, "", "", nil)
		assert.Error(t, err)

		_, err = delivery.NewChecklist(
			kernel.NewUUID(), kernel.NewUUID(), "https://x/sig.png", "", time.Now(), true, "", "", nil)
		assert.Error(t, err)
	})

	t.Run("reports issue flag", func(t *testing.T) {
		c, err := delivery.NewChecklist(
			kernel.NewUUID(), kernel.NewUUID(),
			"https://x/sig.png", "I. Petrov", time.Now(), true, "COOLING_FAILURE", "freezer box broken", nil)
		require.NoError(t, err)

		assert.True(t, c.HasIssue())
		assert.Equal(t, "COOLING_FAILURE", c.IssueCategory())
	})

	t.Run("rejects photo without URL", func(t *testing.T) {
		_, err := delivery.NewChecklist(
			kernel.NewUUID(), kernel.NewUUID(),
			"https://x/sig.png", "I. Petrov", time.Now(), true, "", "",
			[]delivery.Photo{{PhotoType: "delivery"}})
		assert.Error(t, err)
	})
}

func TestStatus(t *testing.T) {
	t.Run("terminal statuses", func(t *testing.T) {
		for _, s := range []delivery.Status{
			delivery.Delivered, delivery.PartiallyDelivered,
			delivery.Failed, delivery.StatusCancelled,
		} {
			assert.True(t, s.IsTerminal(), "%s", s)
		}
		assert.False(t, delivery.Pending.IsTerminal())
		assert.False(t, delivery.InTransit.IsTerminal())
	})

	t.Run("round-trips wire values", func(t *testing.T) {
		for _, s := range []delivery.Status{
			delivery.Pending, delivery.InTransit, delivery.Delivered,
			delivery.PartiallyDelivered, delivery.Failed, delivery.StatusCancelled,
		} {
			parsed, err := delivery.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})
}

func TestOutcome_DeliveryStatus(t *testing.T) {
	assert.Equal(t, delivery.Delivered, delivery.OutcomeDelivered.DeliveryStatus())
	assert.Equal(t, delivery.PartiallyDelivered, delivery.OutcomePartiallyDelivered.DeliveryStatus())
	assert.Equal(t, delivery.Failed, delivery.OutcomeFailed.DeliveryStatus())
	assert.Equal(t, delivery.StatusUnknown, delivery.OutcomeUnknown.DeliveryStatus())
}
