package order_test

import (
	"testing"

	"coldchain/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_RankTable(t *testing.T) {
	expected := map[order.Status]int{
		order.New:       0,
		order.Confirmed: 1,
		order.Picking:   2,
		order.Packing:   3,
		order.Ready:     4,
		order.Shipped:   5,
		order.Partial:   6,
		order.Completed: 7,
		order.Invoiced:  8,
		order.Paid:      8,
		order.Cancelled: -1,
	}

	for status, rank := range expected {
		assert.Equal(t, rank, status.Rank(), "rank of %s", status)
	}
}

func TestStatus_IsProtected(t *testing.T) {
	protected := []order.Status{order.Completed, order.Invoiced, order.Paid}
	for _, s := range protected {
		assert.True(t, s.IsProtected(), "%s should be protected", s)
	}

	unprotected := []order.Status{
		order.New, order.Confirmed, order.Picking, order.Packing,
		order.Ready, order.Shipped, order.Partial, order.Cancelled,
	}
	for _, s := range unprotected {
		assert.False(t, s.IsProtected(), "%s should not be protected", s)
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		for _, s := range []order.Status{
			order.New, order.Confirmed, order.Picking, order.Packing, order.Ready,
			order.Shipped, order.Partial, order.Completed, order.Invoiced,
			order.Paid, order.Cancelled,
		} {
			assert.NoError(t, s.Validate(), "%s", s)
		}
	})

	t.Run("unknown and out-of-range are invalid", func(t *testing.T) {
		assert.Error(t, order.Unknown.Validate())
		assert.Error(t, order.Status(99).Validate())
		assert.Error(t, order.Status(-2).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "NEW", order.New.String())
	assert.Equal(t, "COMPLETED", order.Completed.String())
	assert.Equal(t, "CANCELLED", order.Cancelled.String())
	assert.Equal(t, "UNKNOWN", order.Unknown.String())
	assert.Equal(t, "UNKNOWN", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round-trips every valid status", func(t *testing.T) {
		for _, s := range []order.Status{
			order.New, order.Confirmed, order.Picking, order.Packing, order.Ready,
			order.Shipped, order.Partial, order.Completed, order.Invoiced,
			order.Paid, order.Cancelled,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := order.StatusFromString("UNKNOWN")
		assert.Error(t, err)

		_, err = order.StatusFromString("completed")
		assert.Error(t, err)

		_, err = order.StatusFromString("")
		assert.Error(t, err)
	})
}

func TestDecide(t *testing.T) {
	t.Run("accepts forward transitions", func(t *testing.T) {
		got, err := order.Decide(order.New, order.Confirmed)
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, got)

		got, err = order.Decide(order.Shipped, order.Completed)
		require.NoError(t, err)
		assert.Equal(t, order.Completed, got)
	})

	t.Run("accepts backward transitions below the protected tier", func(t *testing.T) {
		// The workflow is deliberately loose before completion.
		got, err := order.Decide(order.Shipped, order.Picking)
		require.NoError(t, err)
		assert.Equal(t, order.Picking, got)

		got, err = order.Decide(order.Partial, order.New)
		require.NoError(t, err)
		assert.Equal(t, order.New, got)
	})

	t.Run("rejects reverting a protected order", func(t *testing.T) {
		for _, current := range []order.Status{order.Completed, order.Invoiced, order.Paid} {
			for _, requested := range []order.Status{
				order.New, order.Confirmed, order.Picking, order.Packing,
				order.Ready, order.Shipped, order.Partial,
			} {
				_, err := order.Decide(current, requested)
				require.ErrorIs(t, err, order.ErrCannotRevertCompletedOrder,
					"%s -> %s must be rejected", current, requested)
			}
		}
	})

	t.Run("allows cancelling a protected order", func(t *testing.T) {
		for _, current := range []order.Status{order.Completed, order.Invoiced, order.Paid} {
			got, err := order.Decide(current, order.Cancelled)
			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, got)
		}
	})

	t.Run("allows movement within the protected tier", func(t *testing.T) {
		got, err := order.Decide(order.Completed, order.Invoiced)
		require.NoError(t, err)
		assert.Equal(t, order.Invoiced, got)

		got, err = order.Decide(order.Invoiced, order.Paid)
		require.NoError(t, err)
		assert.Equal(t, order.Paid, got)

		// Invoiced and Paid share a rank, so this direction is legal too.
		got, err = order.Decide(order.Paid, order.Invoiced)
		require.NoError(t, err)
		assert.Equal(t, order.Invoiced, got)
	})

	t.Run("rejects invalid statuses", func(t *testing.T) {
		_, err := order.Decide(order.Unknown, order.New)
		assert.Error(t, err)

		_, err = order.Decide(order.New, order.Status(99))
		assert.Error(t, err)
	})
}
