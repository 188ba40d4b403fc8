package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"homestay/shared/failure"
	"homestay/shared/validator"

	"github.com/stretchr/testify/assert"
)

type stayRequest struct {
	GuestName  string `json:"guest_name"  validate:"required"`
	GuestPhone string `json:"guest_phone" validate:"omitempty,phone"`
	Room       string `json:"room"        validate:"required"`
	CheckIn    string `json:"check_in"    validate:"required,date"`
	CheckOut   string `json:"check_out"   validate:"required,date"`
	Deposit    int64  `json:"deposit"     validate:"gte=0"`
	Role       string `json:"role"        validate:"omitempty,oneof=admin staff"`
}

func validStay() stayRequest {
	return stayRequest{
		GuestName:  "Budi",
		GuestPhone: "+62 812-3456-7890",
		Room:       "Room A",
		CheckIn:    "2025-04-01",
		CheckOut:   "2025-04-03",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *stayRequest)
		message string
	}{
		{
			name:   "valid",
			mutate: func(_ *stayRequest) {},
		},
		{
			name:    "missing guest name uses json name",
			mutate:  func(r *stayRequest) { r.GuestName = "" },
			message: "guest_name is required",
		},
		{
			name:    "malformed date",
			mutate:  func(r *stayRequest) { r.CheckIn = "01/04/2025" },
			message: "check_in must be a date formatted as YYYY-MM-DD",
		},
		{
			name:    "impossible date",
			mutate:  func(r *stayRequest) { r.CheckOut = "2025-02-30" },
			message: "check_out must be a date formatted as YYYY-MM-DD",
		},
		{
			name:    "negative deposit",
			mutate:  func(r *stayRequest) { r.Deposit = -1 },
			message: "deposit must be greater than or equal to 0",
		},
		{
			name:    "bad phone",
			mutate:  func(r *stayRequest) { r.GuestPhone = "call me" },
			message: "guest_phone must be a valid phone number",
		},
		{
			name:    "unknown role",
			mutate:  func(r *stayRequest) { r.Role = "guest" },
			message: "role must be one of admin staff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.message)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate_Body(t *testing.T) {
	var req stayRequest

	err := validator.Validate(strings.NewReader(`{"guest_name":"Budi","room":"Room A","check_in":"2025-04-01","check_out":"2025-04-03"}`), &req)

	assert.NoError(t, err)
	assert.Equal(t, "Room A", req.Room)
}

func TestValidate_MalformedBody(t *testing.T) {
	var req stayRequest

	err := validator.Validate(strings.NewReader(`{"guest_name":`), &req)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "valid email", field: "admin@homestay.id", tag: "required,email"},
		{name: "invalid email", field: "admin", tag: "required,email", wantErr: true},
		{name: "valid date", field: "2025-04-03", tag: "date"},
		{name: "invalid date", field: "2025-13-01", tag: "date", wantErr: true},
		{name: "empty passes empty", field: "", tag: "empty"},
		{name: "non empty fails empty", field: "x", tag: "empty", wantErr: true},
		{name: "positive id", field: int64(4), tag: "gt=0"},
		{name: "zero id", field: int64(0), tag: "gt=0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
