package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error wins", New(ErrInvalidInput, http.StatusTeapot, "x"), http.StatusTeapot},
		{"unknown language", fmt.Errorf("lookup: %w", ErrUnknownLanguage), http.StatusNotFound},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"too short", ErrTextTooShort, http.StatusUnprocessableEntity},
		{"too long", ErrTextTooLong, http.StatusRequestEntityTooLarge},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"timeout", ErrTimeout, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusCode(tt.err); got != tt.want {
				t.Errorf("HTTPStatusCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("handler: %w", Newf(ErrTextTooShort, http.StatusUnprocessableEntity, "need %d characters", 50))
	if !errors.Is(err, ErrTextTooShort) {
		t.Error("errors.Is(err, ErrTextTooShort) = false, want true")
	}
	if got := Message(err); got != "need 50 characters" {
		t.Errorf("Message = %q, want %q", got, "need 50 characters")
	}
}

func TestMessageHidesInternalErrors(t *testing.T) {
	if got := Message(errors.New("dial tcp 10.0.0.1:5432: refused")); got != "internal error" {
		t.Errorf("Message = %q, want %q", got, "internal error")
	}
	if got := Message(ErrRateLimited); got != ErrRateLimited.Error() {
		t.Errorf("Message = %q, want %q", got, ErrRateLimited.Error())
	}
}
