package apierr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/appmarket/matchcore/internal/apierr"
	"github.com/appmarket/matchcore/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.NewError(domain.ErrInvalidInput, "bad", nil), http.StatusBadRequest},
		{"external service", domain.NewError(domain.ErrExternalService, "timeout", nil), http.StatusBadGateway},
		{"malformed response", domain.NewError(domain.ErrMalformedResponse, "bad json", nil), http.StatusBadGateway},
		{"storage", domain.NewError(domain.ErrStorage, "db down", nil), http.StatusInternalServerError},
		{"internal", domain.NewError(domain.ErrInternal, "oops", nil), http.StatusInternalServerError},
		{"untyped error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := apierr.Classify(tc.err); got != tc.want {
				t.Errorf("Classify(%v) = %d, want %d", tc.name, got, tc.want)
			}
		})
	}
}
