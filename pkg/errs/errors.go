package errs

import (
	"errors"
	"net/http"

	"github.com/cwrk-planet/conference-service/internal/domain"
)

func ToHTTP(err error) int {
	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnknownReaction):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
