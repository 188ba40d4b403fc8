package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"homestay/shared/constant"
	"homestay/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("check_out must be after check_in")), code: http.StatusBadRequest, message: "check_out must be after check_in"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid id"), code: http.StatusBadRequest, message: "invalid id"},
		{name: "unauthorized", err: failure.Unauthorized("invalid token"), code: http.StatusUnauthorized, message: "invalid token"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, message: "boom"},
		{name: "not found", err: failure.NotFound("booking"), code: http.StatusNotFound, message: "booking"},
		{name: "conflict", err: failure.Conflict("Room A is already booked"), code: http.StatusConflict, message: "Room A is already booked"},
		{name: "forbidden", err: failure.Forbidden("admin only"), code: http.StatusForbidden, message: "admin only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode_WrappedAndPlain(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", failure.NotFound("room"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
}

func TestFromPostgres(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "exclusion violation", err: &pq.Error{Code: constant.PqErrorCodeExclusionViolation}, code: http.StatusConflict},
		{name: "unique violation", err: fmt.Errorf("insert: %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}), code: http.StatusConflict},
		{name: "fk violation", err: &pq.Error{Code: constant.PqErrorCodeFkViolation}, code: http.StatusConflict},
		{name: "other pq error", err: &pq.Error{Code: "42601"}, code: http.StatusInternalServerError},
		{name: "non pq error", err: errors.New("connection reset"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(failure.FromPostgres(tt.err, "booking")))
		})
	}
}

func TestIsPostgresCode(t *testing.T) {
	err := fmt.Errorf("tx: %w", &pq.Error{Code: constant.PqErrorCodeExclusionViolation})

	assert.True(t, failure.IsPostgresCode(err, constant.PqErrorCodeExclusionViolation))
	assert.False(t, failure.IsPostgresCode(err, constant.PqErrorCodeUniqueViolation))
	assert.False(t, failure.IsPostgresCode(errors.New("x"), constant.PqErrorCodeExclusionViolation))
}
