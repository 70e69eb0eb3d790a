package shippingAddress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsCountry(t *testing.T) {
	a, err := New(1, "Home", "Ama", "0201234567", "12 Oxford St", "Accra", "Greater Accra", "", "", false, time.Now())
	require.NoError(t, err)
	assert.Equal(t, DefaultCountry, a.Country)
}

func TestNewRequiresFields(t *testing.T) {
	now := time.Now()
	_, err := New(1, "", "", "020", "st", "Accra", "GA", "", "", false, now)
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = New(1, "", "Ama", "", "st", "Accra", "GA", "", "", false, now)
	assert.ErrorIs(t, err, ErrInvalidPhone)
	_, err = New(1, "", "Ama", "020", "st", "Accra", "", "", "", false, now)
	assert.ErrorIs(t, err, ErrInvalidRegion)
	_, err = New(0, "", "Ama", "020", "st", "Accra", "GA", "", "", false, now)
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestApplyKeepsDefaultUnlessPromoted(t *testing.T) {
	a, err := New(1, "Home", "Ama", "020", "st", "Accra", "GA", "", "", true, time.Now())
	require.NoError(t, err)

	no := false
	city := "Kumasi"
	require.NoError(t, a.Apply(Patch{City: &city, IsDefault: &no}, time.Now()))
	assert.Equal(t, "Kumasi", a.City)
	assert.True(t, a.IsDefault)

	blank := ""
	assert.ErrorIs(t, a.Apply(Patch{Street: &blank}, time.Now()), ErrInvalidStreet)
}
