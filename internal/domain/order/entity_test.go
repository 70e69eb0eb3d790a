package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComputesTotalAndDefaults(t *testing.T) {
	now := time.Date(2026, 5, 9, 23, 30, 0, 0, time.UTC)
	items := []Item{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("150")},
		{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("89.99")},
	}

	o, err := New(3, "GH-20260509-ABCDEF12", items, "", nil, " momo ", "", now)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "GHS", o.Currency)
	assert.Equal(t, "pending", o.PaymentStatus)
	assert.Equal(t, "momo", o.PaymentMethod)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("389.99")))
	assert.Equal(t, 3, o.ItemCount())
}

func TestNewRejectsEmptyOrInvalidItems(t *testing.T) {
	now := time.Now()
	_, err := New(1, "GH-1", nil, "GHS", nil, "", "", now)
	assert.ErrorIs(t, err, ErrInvalidItems)

	_, err = New(1, "GH-1", []Item{{ProductID: 1, Quantity: 0, Price: decimal.NewFromInt(1)}}, "GHS", nil, "", "", now)
	assert.ErrorIs(t, err, ErrInvalidItems)

	_, err = New(0, "GH-1", []Item{{ProductID: 1, Quantity: 1}}, "GHS", nil, "", "", now)
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusProcessing))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusShipped))
	assert.True(t, StatusShipped.CanTransitionTo(StatusDelivered))

	assert.False(t, StatusProcessing.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))

	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, Status("lost").Valid())
}

func TestCancelOnlyFromPending(t *testing.T) {
	later := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	o := Order{Status: StatusPending}
	require.NoError(t, o.Cancel(later))
	assert.Equal(t, StatusCancelled, o.Status)
	assert.Equal(t, later, o.UpdatedAt)

	assert.ErrorIs(t, o.Cancel(later), ErrNotCancellable)

	shipped := Order{Status: StatusShipped}
	assert.ErrorIs(t, shipped.Cancel(later), ErrNotCancellable)
}

func TestRandomNumberGeneratorFormat(t *testing.T) {
	g := NewRandomNumberGenerator("")
	now := time.Date(2026, 10, 14, 1, 2, 3, 0, time.UTC)

	n, err := g.Next(now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^GH-20261014-[0-9A-F]{8}$`), n)

	other, err := g.Next(now)
	require.NoError(t, err)
	assert.NotEqual(t, n, other)
}

func TestRandomNumberGeneratorUpperCasesPrefix(t *testing.T) {
	g := NewRandomNumberGenerator(" shop ")
	assert.Equal(t, "SHOP", g.Prefix)

	n, err := g.Next(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^SHOP-20261014-[0-9A-F]{8}$`), n)
}

func TestFormatNumberUsesUTCDate(t *testing.T) {
	tz := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2026, 10, 15, 2, 0, 0, 0, tz) // 2026-10-14 21:00 UTC
	assert.Equal(t, "GH-20261014-00000000", FormatNumber("GH", local, "00000000"))
}
