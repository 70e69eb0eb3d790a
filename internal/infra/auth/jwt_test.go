package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("k", 32))

func TestJWTManager_IssueAndParse(t *testing.T) {
	m, err := NewJWTManager(testSecret)
	require.NoError(t, err)

	tok, exp, err := m.Issue(42, "ama@example.com", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "ama@example.com", claims.Email)
}

func TestJWTManager_RejectsExpiredAndForeignTokens(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	old, err := NewJWTManager(testSecret)
	require.NoError(t, err)
	old.WithClock(func() time.Time { return past })

	expired, _, err := old.Issue(1, "", time.Hour)
	require.NoError(t, err)

	m, _ := NewJWTManager(testSecret)
	_, err = m.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, _ := NewJWTManager([]byte(strings.Repeat("z", 32)))
	foreign, _, err := other.Issue(1, "", time.Hour)
	require.NoError(t, err)
	_, err = m.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTManager_ShortSecret(t *testing.T) {
	_, err := NewJWTManager([]byte("short"))
	assert.ErrorIs(t, err, ErrShortSecret)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)
	hash, err := h.Hash("Secret123")
	require.NoError(t, err)

	require.NoError(t, h.Compare(hash, "Secret123"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrPasswordMismatch)
}
