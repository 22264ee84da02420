package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NotFound("patient", nil), http.StatusNotFound},
		{Validation("bad input"), http.StatusBadRequest},
		{Unauthenticated("no token"), http.StatusUnauthorized},
		{InvalidCredentials(), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{PasswordChangeRequired(), http.StatusConflict},
		{BedOccupied("UTI", "03"), http.StatusConflict},
		{DuplicatePatient("Maria Lima"), http.StatusConflict},
		{EmailTaken("ana@fisio.local"), http.StatusConflict},
		{SelfDeactivation(), http.StatusConflict},
		{Internal(nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.HTTPStatus(), tt.err.Message)
	}
}

func TestIsUnwrapsChain(t *testing.T) {
	err := fmt.Errorf("handling request: %w", BedOccupied("UTI", "03"))

	assert.True(t, Is(err, ErrBedOccupied))
	assert.False(t, Is(err, ErrNotFound))

	appErr, ok := AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, ErrBedOccupied, appErr.Code)
}

func TestAsAppErrorPlainError(t *testing.T) {
	_, ok := AsAppError(fmt.Errorf("plain failure"))
	assert.False(t, ok)
}
