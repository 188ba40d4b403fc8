package dto

import (
	"errors"
	"fmt"
	"time"

	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/occupancy"
	"homestay/shared"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
	"homestay/shared/timezone"
)

const (
	EventCreated = "booking.created"
	EventUpdated = "booking.updated"
	EventDeleted = "booking.deleted"
)

func parseDay(field, value string) (time.Time, error) {
	day, err := time.Parse(constant.DayFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}

	return day, nil
}

// ParseStay parses a check-in and check-out pair.
func ParseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := parseDay(constant.RequestParamCheckIn, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	out, err := parseDay(constant.RequestParamCheckOut, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return in, out, nil
}

type CreateBookingRequest struct {
	GuestName   string `json:"guest_name"   validate:"required,max=100"`
	GuestPhone  string `json:"guest_phone"  validate:"required,phone"`
	Room        string `json:"room"         validate:"required,max=50"`
	CheckIn     string `json:"check_in"     validate:"required,date"`
	CheckOut    string `json:"check_out"    validate:"required,date"`
	NightlyRate int64  `json:"nightly_rate" validate:"gte=0"`
	Deposit     int64  `json:"deposit"      validate:"gte=0"`
}

// ToModel builds the booking without its price; the service fills the money fields.
func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, checkOut, err := ParseStay(c.CheckIn, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		GuestName:  c.GuestName,
		GuestPhone: c.GuestPhone,
		Room:       c.Room,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Deposit:    c.Deposit,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

// CreateGroupBookingRequest books several rooms for one guest over the same stay.
type CreateGroupBookingRequest struct {
	GuestName  string   `json:"guest_name"  validate:"required,max=100"`
	GuestPhone string   `json:"guest_phone" validate:"required,phone"`
	Rooms      []string `json:"rooms"       validate:"required,min=1,dive,required,max=50"`
	CheckIn    string   `json:"check_in"    validate:"required,date"`
	CheckOut   string   `json:"check_out"   validate:"required,date"`
	Deposit    int64    `json:"deposit"     validate:"gte=0"`
}

// ToModels returns one unpriced booking per room sharing groupID. The deposit is spread once the rooms are priced.
func (c *CreateGroupBookingRequest) ToModels(groupID, user string) ([]model.Booking, error) {
	if len(c.Rooms) == 0 {
		return nil, errors.New("rooms cannot be empty")
	}

	checkIn, checkOut, err := ParseStay(c.CheckIn, c.CheckOut)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(c.Rooms))
	bookings := make([]model.Booking, 0, len(c.Rooms))
	now := timezone.Now()

	for _, room := range c.Rooms {
		if _, dup := seen[room]; dup {
			return nil, fmt.Errorf("room %s is listed more than once", room)
		}

		seen[room] = struct{}{}

		booking := model.Booking{
			GroupID:    groupID,
			GuestName:  c.GuestName,
			GuestPhone: c.GuestPhone,
			Room:       room,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Metadata:   gModel.NewMetadata(user, now),
		}

		bookings = append(bookings, booking)
	}

	return bookings, nil
}

type CreateGroupBookingResponse struct {
	GroupID string  `json:"group_id"`
	IDs     []int64 `json:"ids"`
	Total   int64   `json:"total"`
}

type UpdateBookingRequest struct {
	GuestName   *string `json:"guest_name"   validate:"omitempty,max=100"`
	GuestPhone  *string `json:"guest_phone"  validate:"omitempty,phone"`
	Room        *string `json:"room"         validate:"omitempty,max=50"`
	CheckIn     *string `json:"check_in"     validate:"omitempty,date"`
	CheckOut    *string `json:"check_out"    validate:"omitempty,date"`
	NightlyRate *int64  `json:"nightly_rate" validate:"omitempty,gte=0"`
	Deposit     *int64  `json:"deposit"      validate:"omitempty,gte=0"`
}

func (u UpdateBookingRequest) Empty() bool {
	return u.GuestName == nil && u.GuestPhone == nil && u.Room == nil && u.CheckIn == nil &&
		u.CheckOut == nil && u.NightlyRate == nil && u.Deposit == nil
}

// Apply merges the request into a copy of booking. Reprice reports whether the room or the
// stay changed, in which case the stored total no longer holds.
func (u UpdateBookingRequest) Apply(booking model.Booking) (updated model.Booking, reprice bool, err error) {
	updated = booking

	if u.GuestName != nil {
		updated.GuestName = *u.GuestName
	}

	if u.GuestPhone != nil {
		updated.GuestPhone = *u.GuestPhone
	}

	if u.Room != nil {
		updated.Room = *u.Room
	}

	if u.CheckIn != nil {
		if updated.CheckIn, err = parseDay(constant.RequestParamCheckIn, *u.CheckIn); err != nil {
			return booking, false, err
		}
	}

	if u.CheckOut != nil {
		if updated.CheckOut, err = parseDay(constant.RequestParamCheckOut, *u.CheckOut); err != nil {
			return booking, false, err
		}
	}

	if u.Deposit != nil {
		updated.Deposit = *u.Deposit
	}

	reprice = updated.Room != booking.Room ||
		!occupancy.Day(updated.CheckIn).Equal(occupancy.Day(booking.CheckIn)) ||
		!occupancy.Day(updated.CheckOut).Equal(occupancy.Day(booking.CheckOut))

	return updated, reprice, nil
}

type BookingResponse struct {
	ID          int64  `json:"id"`
	GroupID     string `json:"group_id,omitempty"`
	GuestName   string `json:"guest_name"`
	GuestPhone  string `json:"guest_phone"`
	Room        string `json:"room"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Nights      int    `json:"nights"`
	NightlyRate int64  `json:"nightly_rate"`
	FlatRate    bool   `json:"flat_rate"`
	Total       int64  `json:"total"`
	Deposit     int64  `json:"deposit"`
	BalanceDue  int64  `json:"balance_due"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	gDto.Metadata
}

// FromModel fills the response, deriving the status for today instead of trusting the stored one.
func (r *BookingResponse) FromModel(model model.Booking, today time.Time) {
	r.ID = model.ID
	r.GroupID = model.GroupID
	r.GuestName = model.GuestName
	r.GuestPhone = model.GuestPhone
	r.Room = model.Room
	r.CheckIn = model.CheckIn.Format(constant.DayFormat)
	r.CheckOut = model.CheckOut.Format(constant.DayFormat)
	r.Nights = occupancy.Nights(model.CheckIn, model.CheckOut)
	r.NightlyRate = model.NightlyRate
	r.FlatRate = model.FlatRate
	r.Total = model.Total
	r.Deposit = model.Deposit
	r.BalanceDue = model.BalanceDue
	r.setStatus(occupancy.DeriveStatus(model.CheckIn, model.CheckOut, model.BalanceDue, today))
	r.Metadata.FromModel(model.Metadata)
}

// Rederive recomputes the status of a response restored from cache.
func (r *BookingResponse) Rederive(today time.Time) {
	checkIn, checkOut, err := ParseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return
	}

	r.setStatus(occupancy.DeriveStatus(checkIn, checkOut, r.BalanceDue, today))
}

func (r *BookingResponse) setStatus(status occupancy.Status) {
	r.Status = status.String()
	r.StatusLabel = status.Label()
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int, today time.Time) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, today)
	}
}

func (r *GetBookingsResponse) Rederive(today time.Time) {
	for i := range r.Bookings {
		r.Bookings[i].Rederive(today)
	}
}

type AvailabilityRequest struct {
	Room     string `json:"room"      validate:"required,max=50"`
	CheckIn  string `json:"check_in"  validate:"required,date"`
	CheckOut string `json:"check_out" validate:"required,date"`
}

type AvailabilityResponse struct {
	Room      string           `json:"room"`
	CheckIn   string           `json:"check_in"`
	CheckOut  string           `json:"check_out"`
	Nights    int              `json:"nights"`
	Available bool             `json:"available"`
	Total     int64            `json:"total"`
	Conflict  *BookingResponse `json:"conflict,omitempty"`
}

// Event is published to the booking topic after every write.
type Event struct {
	Type       string          `json:"type"`
	Booking    BookingResponse `json:"booking"`
	OccurredAt time.Time       `json:"occurred_at"`
}
