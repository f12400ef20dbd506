package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindConflict, KindOf(Conflict("dup")))

	// Wrapped errors keep their kind.
	wrapped := fmt.Errorf("outer: %w", Forbidden("nope"))
	assert.Equal(t, KindForbidden, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindForbidden))

	// Raw errors never decide a status.
	assert.Equal(t, KindInternal, KindOf(errors.New("sql: connection refused")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{InvalidArgument("bad input"), http.StatusBadRequest},
		{Conflict("dup"), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("raw"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err))
	}
}

func TestUserMessage_HidesInternalDetails(t *testing.T) {
	assert.Equal(t, "gone", UserMessage(NotFound("gone")))
	assert.Equal(t, "internal server error", UserMessage(Internal(errors.New("dsn=postgres://u:p@host"))))
	assert.Equal(t, "internal server error", UserMessage(errors.New("raw")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindInternal, "while saving", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "while saving")
	assert.Contains(t, err.Error(), "boom")
}
