package product

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoundsPriceAndNormalizesTags(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	p, err := New(" Silk Wrap Dress ", "Dresses", decimal.RequireFromString("149.999"), "img.jpg", "desc",
		[]string{"silk", " wrap ", "", "silk"}, 4, now)
	require.NoError(t, err)

	assert.Equal(t, "Silk Wrap Dress", p.Name)
	assert.Equal(t, "150", p.Price.String())
	assert.Equal(t, []string{"silk", "wrap"}, p.Tags)
	assert.True(t, p.Active)
	assert.Equal(t, now, p.CreatedAt)
}

func TestNewRejectsInvalid(t *testing.T) {
	now := time.Now()

	_, err := New("", "Dresses", decimal.NewFromInt(1), "", "", nil, 1, now)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = New("Bag", "Bags", decimal.NewFromInt(-1), "", "", nil, 1, now)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = New("Bag", "Bags", decimal.NewFromInt(1), "", "", nil, -1, now)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCanFulfil(t *testing.T) {
	p := &Product{Stock: 3, Active: true}
	assert.True(t, p.CanFulfil(3))
	assert.False(t, p.CanFulfil(4))
	assert.True(t, p.Purchasable())

	p.Active = false
	assert.False(t, p.Purchasable())
}

func TestTagsCSV(t *testing.T) {
	assert.Equal(t, "a,b", JoinTags([]string{" a", "b ", "a"}))
	assert.Equal(t, []string{"a", "b"}, SplitTags("a, b,,"))
	assert.Equal(t, []string{}, SplitTags("  "))
}
