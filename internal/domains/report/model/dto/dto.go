package dto

import (
	"slices"
	"strings"
	"time"

	"homestay/internal/domains/booking/model"
	bookingDto "homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/occupancy"
	"homestay/shared/constant"
)

// File is a generated document ready to be served or stored.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

type RoomRevenue struct {
	Room     string `json:"room"`
	Bookings int    `json:"bookings"`
	Nights   int    `json:"nights"`
	Revenue  int64  `json:"revenue"`
}

type SummaryResponse struct {
	From        string        `json:"from,omitempty"`
	To          string        `json:"to,omitempty"`
	Bookings    int           `json:"bookings"`
	Nights      int           `json:"nights"`
	Revenue     int64         `json:"revenue"`
	Deposits    int64         `json:"deposits"`
	Outstanding int64         `json:"outstanding"`
	ByStatus    []StatusCount `json:"by_status"`
	ByRoom      []RoomRevenue `json:"by_room"`
}

// FromBookings aggregates bookings, deriving each status for today.
// Every booking counts its full total and nights even when only part of the stay falls in the window.
// Outstanding only counts positive balances; overpayments do not offset other debts.
func (s *SummaryResponse) FromBookings(bookings []model.Booking, today time.Time) {
	counts := make(map[occupancy.Status]int, len(occupancy.Statuses()))
	rooms := map[string]*RoomRevenue{}

	for _, booking := range bookings {
		nights := occupancy.Nights(booking.CheckIn, booking.CheckOut)

		s.Bookings++
		s.Nights += nights
		s.Revenue += booking.Total
		s.Deposits += booking.Deposit

		if booking.BalanceDue > 0 {
			s.Outstanding += booking.BalanceDue
		}

		counts[occupancy.DeriveStatus(booking.CheckIn, booking.CheckOut, booking.BalanceDue, today)]++

		room, ok := rooms[booking.Room]
		if !ok {
			room = &RoomRevenue{Room: booking.Room}
			rooms[booking.Room] = room
		}

		room.Bookings++
		room.Nights += nights
		room.Revenue += booking.Total
	}

	s.ByStatus = make([]StatusCount, 0, len(occupancy.Statuses()))
	for _, status := range occupancy.Statuses() {
		s.ByStatus = append(s.ByStatus, StatusCount{Status: status.String(), Label: status.Label(), Count: counts[status]})
	}

	s.ByRoom = make([]RoomRevenue, 0, len(rooms))
	for _, room := range rooms {
		s.ByRoom = append(s.ByRoom, *room)
	}

	slices.SortFunc(s.ByRoom, func(a, b RoomRevenue) int {
		return strings.Compare(a.Room, b.Room)
	})
}

// Window formats an optional reporting window.
func (s *SummaryResponse) Window(from, to time.Time) {
	if !from.IsZero() {
		s.From = from.Format(constant.DayFormat)
	}

	if !to.IsZero() {
		s.To = to.Format(constant.DayFormat)
	}
}

type ArchiveResponse struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

type DeleteArchiveRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Invoice itemises one booking, or every booking of its group.
type Invoice struct {
	Number     string
	IssuedAt   time.Time
	GuestName  string
	GuestPhone string
	Items      []bookingDto.BookingResponse
	Total      int64
	Deposit    int64
	BalanceDue int64
}

func (i *Invoice) FromBookings(number string, bookings []model.Booking, issuedAt, today time.Time) {
	i.Number = number
	i.IssuedAt = issuedAt
	i.Items = make([]bookingDto.BookingResponse, len(bookings))

	for idx, booking := range bookings {
		if idx == 0 {
			i.GuestName = booking.GuestName
			i.GuestPhone = booking.GuestPhone
		}

		i.Items[idx].FromModel(booking, today)
		i.Total += booking.Total
		i.Deposit += booking.Deposit
		i.BalanceDue += booking.BalanceDue
	}
}

// Paid reports whether nothing is left to pay across the invoice.
func (i Invoice) Paid() bool {
	return i.BalanceDue <= 0
}
