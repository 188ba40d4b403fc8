package model

import (
	"time"

	"homestay/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldGroupID     = "group_id"
	FieldGuestName   = "guest_name"
	FieldGuestPhone  = "guest_phone"
	FieldRoom        = "room"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldNightlyRate = "nightly_rate"
	FieldFlatRate    = "flat_rate"
	FieldTotal       = "total"
	FieldDeposit     = "deposit"
	FieldBalanceDue  = "balance_due"
	FieldStatus      = "status"
)

// Booking is one room reserved for one guest over [CheckIn, CheckOut).
// Status is a display cache only; derive it with occupancy.DeriveStatus.
type Booking struct {
	ID          int64     `db:"id"           auto:"true"`
	GroupID     string    `db:"group_id"`
	GuestName   string    `db:"guest_name"`
	GuestPhone  string    `db:"guest_phone"`
	Room        string    `db:"room"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	NightlyRate int64     `db:"nightly_rate"`
	FlatRate    bool      `db:"flat_rate"`
	Total       int64     `db:"total"`
	Deposit     int64     `db:"deposit"`
	BalanceDue  int64     `db:"balance_due"`
	Status      string    `db:"status"`
	model.Metadata
}

func (b Booking) Grouped() bool {
	return b.GroupID != ""
}
