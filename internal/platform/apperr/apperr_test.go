package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindInvalidArgument:   http.StatusBadRequest,
		KindNotFound:          http.StatusNotFound,
		KindInsufficientStock: http.StatusBadRequest,
		KindUnauthenticated:   http.StatusUnauthorized,
		KindInvalidState:      http.StatusBadRequest,
		KindConflict:          http.StatusConflict,
		KindUnavailable:       http.StatusServiceUnavailable,
		KindInternal:          http.StatusInternalServerError,
		Kind("unknown"):       http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), string(kind))
	}
}

func TestInsufficientStockCarriesAvailable(t *testing.T) {
	err := InsufficientStock(3)
	require.NotNil(t, err.Available)
	assert.Equal(t, 3, *err.Available)
	assert.Equal(t, "Insufficient stock. Available: 3", err.Error())
}

func TestWrappedCauseSurvivesErrorsIs(t *testing.T) {
	sentinel := errors.New("order: not found")
	err := fmt.Errorf("load: %w", Wrap(KindNotFound, "Order not found", sentinel))

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, &Error{Kind: KindNotFound}))
	assert.False(t, errors.Is(err, &Error{Kind: KindConflict}))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestKindOfPlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestInternalHidesCauseInMessage(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"))
	assert.Equal(t, "internal server error", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
}
