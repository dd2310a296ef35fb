// Package apierr implements C10: mapping a domain error kind to an HTTP
// status class for the transport layer.
package apierr

import (
	"net/http"

	"github.com/appmarket/matchcore/internal/domain"
)

// Classify maps err to the HTTP status spec.md §4.10 assigns to its kind.
// Errors that do not carry a domain.Error are treated as internal.
func Classify(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrInvalidInput:
		return http.StatusBadRequest
	case domain.ErrExternalService, domain.ErrMalformedResponse:
		return http.StatusBadGateway
	case domain.ErrStorage, domain.ErrInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
