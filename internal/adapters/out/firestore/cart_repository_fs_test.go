package firestore

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartFromData_MergesDuplicatesAndSkipsBadLines(t *testing.T) {
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	raw := map[string]any{
		"createdAt": now,
		"updatedAt": now,
		"expiresAt": now.Add(time.Hour),
		"items": []any{
			map[string]any{"productId": int64(1), "quantity": int64(2), "price": "150.00"},
			map[string]any{"productId": int64(1), "quantity": int64(1), "price": "150.00"},
			map[string]any{"productId": "2", "quantity": float64(1), "price": "89.5"},
			map[string]any{"productId": int64(3), "quantity": int64(0), "price": "10"},
			"garbage",
		},
	}

	c := cartFromData(raw)
	require.Len(t, c.Items, 2)
	assert.Equal(t, int64(1), c.Items[0].ProductID)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.True(t, c.Items[1].Price.Equal(decimal.RequireFromString("89.50")))
	assert.Equal(t, now.Add(time.Hour), c.ExpiresAt)
}

func TestCartFromData_Nil(t *testing.T) {
	c := cartFromData(nil)
	require.NotNil(t, c)
	assert.Empty(t, c.Items)
}
