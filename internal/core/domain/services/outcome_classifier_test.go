package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/core/domain/services"
)

func newItem(
	t *testing.T,
	ordered, delivered, rejected int,
	reason delivery.RejectionReason,
	notes string,
) *delivery.Item {
	t.Helper()
	item, err := delivery.NewItem(
		kernel.NewUUID(), kernel.NewUUID(),
		"Frozen cod fillet",
		ordered, delivered, rejected,
		reason, notes,
		"kg",
	)
	require.NoError(t, err)
	return item
}

func TestOutcomeClassifier_Classify(t *testing.T) {
	classifier := services.NewOutcomeClassifier()

	t.Run("should classify full handover as delivered", func(t *testing.T) {
		items := []*delivery.Item{
			newItem(t, 10, 10, 0, delivery.ReasonNone, ""),
			newItem(t, 4, 4, 0, delivery.ReasonNone, ""),
		}

		outcome, err := classifier.Classify(items, false)

		require.NoError(t, err)
		assert.Equal(t, delivery.OutcomeDelivered, outcome)
	})

	t.Run("should classify any rejection as partially delivered", func(t *testing.T) {
		items := []*delivery.Item{
			newItem(t, 10, 10, 0, delivery.ReasonNone, ""),
			newItem(t, 4, 3, 1, delivery.Melted, ""),
		}

		outcome, err := classifier.Classify(items, false)

		require.NoError(t, err)
		assert.Equal(t, delivery.OutcomePartiallyDelivered, outcome)
	})

	t.Run("should classify zero delivered as failed", func(t *testing.T) {
		items := []*delivery.Item{
			newItem(t, 10, 0, 10, delivery.CustomerRefused, ""),
			newItem(t, 4, 0, 4, delivery.CustomerRefused, ""),
		}

		outcome, err := classifier.Classify(items, false)

		require.NoError(t, err)
		assert.Equal(t, delivery.OutcomeFailed, outcome)
	})

	t.Run("should classify reported issue as failed even with full handover", func(t *testing.T) {
		items := []*delivery.Item{
			newItem(t, 10, 10, 0, delivery.ReasonNone, ""),
		}

		outcome, err := classifier.Classify(items, true)

		require.NoError(t, err)
		assert.Equal(t, delivery.OutcomeFailed, outcome)
	})

	t.Run("should classify empty item list as failed", func(t *testing.T) {
		outcome, err := classifier.Classify(nil, false)

		require.NoError(t, err)
		assert.Equal(t, delivery.OutcomeFailed, outcome)
	})

	t.Run("should reject quantity mismatch", func(t *testing.T) {
		items := []*delivery.Item{
			newItem(t, 10, 7, 1, delivery.Melted, ""),
		}

		_, err := classifier.Classify(items, false)

		var validationErr *delivery.ItemValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Violations, 1)
		assert.Equal(t, delivery.ViolationQuantityMismatch, validationErr.Violations[0].Reason)
		assert.Equal(t, 0, validationErr.Violations[0].Index)
	})

	t.Run("should reject missing rejection reason", func(t *testing.T) {
		items := []*delivery.Item{
			newItem(t, 10, 9, 1, delivery.ReasonNone, ""),
		}

		_, err := classifier.Classify(items, false)

		var validationErr *delivery.ItemValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Violations, 1)
		assert.Equal(t, delivery.ViolationMissingRejectionReason, validationErr.Violations[0].Reason)
	})

	t.Run("should reject OTHER reason without notes", func(t *testing.T) {
		items := []*delivery.Item{
			newItem(t, 10, 9, 1, delivery.Other, ""),
		}

		_, err := classifier.Classify(items, false)

		var validationErr *delivery.ItemValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Violations, 1)
		assert.Equal(t, delivery.ViolationMissingRejectionNotes, validationErr.Violations[0].Reason)
	})

	t.Run("should accept OTHER reason with notes", func(t *testing.T) {
		items := []*delivery.Item{
			newItem(t, 10, 9, 1, delivery.Other, "box crushed by pallet"),
		}

		outcome, err := classifier.Classify(items, false)

		require.NoError(t, err)
		assert.Equal(t, delivery.OutcomePartiallyDelivered, outcome)
	})

	t.Run("should report every failing item, not just the first", func(t *testing.T) {
		items := []*delivery.Item{
			newItem(t, 10, 10, 0, delivery.ReasonNone, ""),
			newItem(t, 10, 7, 1, delivery.Melted, ""),
			newItem(t, 4, 3, 1, delivery.ReasonNone, ""),
		}

		_, err := classifier.Classify(items, false)

		var validationErr *delivery.ItemValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Len(t, validationErr.Violations, 2)
		assert.Equal(t, 1, validationErr.Violations[0].Index)
		assert.Equal(t, delivery.ViolationQuantityMismatch, validationErr.Violations[0].Reason)
		assert.Equal(t, 2, validationErr.Violations[1].Index)
		assert.Equal(t, delivery.ViolationMissingRejectionReason, validationErr.Violations[1].Reason)
	})

	t.Run("should fail on unconstructed item", func(t *testing.T) {
		items := []*delivery.Item{{}}

		_, err := classifier.Classify(items, false)

		assert.True(t, errors.Is(err, delivery.ErrItemIsNotConstructed))
	})
}
