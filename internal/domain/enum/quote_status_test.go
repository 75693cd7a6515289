package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteStatusNames(t *testing.T) {
	assert.Equal(t, "Building", QuoteStatusBuilding.String())
	assert.Equal(t, "Pending", QuoteStatusPending.String())
	assert.Equal(t, "Approved", QuoteStatusApproved.String())
	assert.Equal(t, "Rejected", QuoteStatusRejected.String())
	assert.Equal(t, "Completed", QuoteStatusCompleted.String())
}

func TestParseQuoteStatus(t *testing.T) {
	for _, status := range []QuoteStatus{
		QuoteStatusBuilding,
		QuoteStatusPending,
		QuoteStatusApproved,
		QuoteStatusRejected,
		QuoteStatusCompleted,
	} {
		parsed, ok := ParseQuoteStatus(status.String())
		assert.True(t, ok)
		assert.Equal(t, status, parsed)
	}

	_, ok := ParseQuoteStatus("Shipped")
	assert.False(t, ok)
}

func TestIsAssignable(t *testing.T) {
	assert.False(t, QuoteStatusBuilding.IsAssignable())
	assert.True(t, QuoteStatusPending.IsAssignable())
	assert.True(t, QuoteStatusApproved.IsAssignable())
	assert.True(t, QuoteStatusRejected.IsAssignable())
	assert.True(t, QuoteStatusCompleted.IsAssignable())
	assert.False(t, QuoteStatus(42).IsAssignable())
}

func TestCanTransitionTo(t *testing.T) {
	assignable := []QuoteStatus{
		QuoteStatusPending,
		QuoteStatusApproved,
		QuoteStatusRejected,
		QuoteStatusCompleted,
	}

	// Building moves only to Pending
	assert.True(t, QuoteStatusBuilding.CanTransitionTo(QuoteStatusPending))
	assert.False(t, QuoteStatusBuilding.CanTransitionTo(QuoteStatusApproved))
	assert.False(t, QuoteStatusBuilding.CanTransitionTo(QuoteStatusRejected))
	assert.False(t, QuoteStatusBuilding.CanTransitionTo(QuoteStatusCompleted))

	// once out of Building the four states reassign freely
	for _, from := range assignable {
		for _, to := range assignable {
			assert.True(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
		// but nothing returns to Building
		assert.False(t, from.CanTransitionTo(QuoteStatusBuilding))
	}

	assert.False(t, QuoteStatusPending.CanTransitionTo(QuoteStatus(42)))
	assert.False(t, QuoteStatus(42).CanTransitionTo(QuoteStatusPending))
}

func TestScan(t *testing.T) {
	var s QuoteStatus

	require.NoError(t, s.Scan(int64(2)))
	assert.Equal(t, QuoteStatusApproved, s)

	require.NoError(t, s.Scan(float64(3)))
	assert.Equal(t, QuoteStatusRejected, s)

	require.NoError(t, s.Scan([]byte("4")))
	assert.Equal(t, QuoteStatusCompleted, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, QuoteStatusBuilding, s)

	assert.Error(t, s.Scan("Approved"))
	assert.Error(t, s.Scan([]byte("not-a-number")))
	assert.Error(t, s.Scan(true))
}
