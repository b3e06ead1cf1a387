package hrest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"wastetrade-service/pkg/xerrors"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{xerrors.ErrUserNotFound, http.StatusNotFound},
		{xerrors.ErrAgentNotFound, http.StatusNotFound},
		{xerrors.ErrWasteNotFound, http.StatusNotFound},
		{xerrors.ErrInvalidAmount, http.StatusBadRequest},
		{xerrors.ErrInvalidEmailFormat, http.StatusBadRequest},
		{xerrors.ErrWeakPassword, http.StatusBadRequest},
		{fmt.Errorf("%w: end date before start date", xerrors.ErrInvalidRequest), http.StatusBadRequest},
		{xerrors.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{xerrors.ErrUserAlreadyExists, http.StatusConflict},
		{xerrors.ErrAgentAlreadyExists, http.StatusConflict},
		{xerrors.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFromError(tc.err), "error %v", tc.err)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID("not-a-number")
	assert.Error(t, err)
}
