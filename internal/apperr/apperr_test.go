package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("services.requests.Transition: %w", New(KindInvalidTransition, "cannot move done to pending"))

	assert.ErrorIs(t, err, InvalidTransition)
	assert.NotErrorIs(t, err, NotFound)
	assert.Equal(t, KindInvalidTransition, KindOf(err))
	assert.Equal(t, "cannot move done to pending", Message(err))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindProfileCreateFailed, "create profile", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ProfileCreateFailed)
	assert.Equal(t, "create profile: connection reset", err.Error())
}

func TestUnclassifiedErrors(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal server error", Message(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindOf(err)))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotAuthenticated:     http.StatusUnauthorized,
		KindUnauthorized:         http.StatusForbidden,
		KindNotFound:             http.StatusNotFound,
		KindInvalidTransition:    http.StatusConflict,
		KindConflict:             http.StatusConflict,
		KindInvalidInput:         http.StatusBadRequest,
		KindValidationFailed:     http.StatusUnprocessableEntity,
		KindUnsupportedMediaType: http.StatusUnsupportedMediaType,
		KindPayloadTooLarge:      http.StatusRequestEntityTooLarge,
		KindProfileCreateFailed:  http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), kind)
	}
}
