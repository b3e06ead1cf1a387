package hrest

import (
	"errors"
	"net/http"
	"strconv"

	"wastetrade-service/pkg/xerrors"
)

// statusFromError maps typed usecase errors onto HTTP status codes; the
// usecases themselves know nothing about HTTP.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, xerrors.ErrUserNotFound),
		errors.Is(err, xerrors.ErrAgentNotFound),
		errors.Is(err, xerrors.ErrWasteNotFound),
		errors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, xerrors.ErrInvalidAmount),
		errors.Is(err, xerrors.ErrInvalidRequest),
		errors.Is(err, xerrors.ErrInvalidEmailFormat),
		errors.Is(err, xerrors.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, xerrors.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, xerrors.ErrUserAlreadyExists),
		errors.Is(err, xerrors.ErrAgentAlreadyExists),
		errors.Is(err, xerrors.ErrEmailAlreadyInUse):
		return http.StatusConflict
	case errors.Is(err, xerrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}
