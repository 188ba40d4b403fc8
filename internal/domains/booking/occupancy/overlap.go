// Package occupancy holds the double-booking check and the derived booking status.
// Every function is pure; callers supply the bookings and the current date.
package occupancy

import (
	"errors"
	"fmt"
	"time"

	"homestay/internal/domains/booking/model"
)

// NoExclusion is passed as excludeID when checking a new booking. Stored ids start at 1.
const NoExclusion int64 = 0

var ErrInvalidDateRange = errors.New("check_out must be after check_in")

// ConflictError names the booking that already holds a night of the requested stay.
type ConflictError struct {
	Room     string
	Existing model.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %s is already booked from %s to %s",
		e.Room, e.Existing.CheckIn.Format(time.DateOnly), e.Existing.CheckOut.Format(time.DateOnly))
}

// Day truncates t to its calendar date at midnight UTC, keeping t's own year, month and day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateRange rejects stays whose check-out is not strictly after check-in.
func ValidateRange(checkIn, checkOut time.Time) error {
	if !Day(checkOut).After(Day(checkIn)) {
		return ErrInvalidDateRange
	}

	return nil
}

// Nights counts the nights between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return int(Day(checkOut).Sub(Day(checkIn)).Hours() / 24) //nolint:mnd
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share a night.
// A stay ending on the day another begins does not overlap it.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return Day(bStart).Before(Day(aEnd)) && Day(bEnd).After(Day(aStart))
}

// FindConflict returns the first booking of room that overlaps [start, end), skipping excludeID.
func FindConflict(room string, start, end time.Time, existing []model.Booking, excludeID int64) (model.Booking, bool) {
	for _, booking := range existing {
		if booking.Room != room {
			continue
		}

		if excludeID != NoExclusion && booking.ID == excludeID {
			continue
		}

		if Overlaps(start, end, booking.CheckIn, booking.CheckOut) {
			return booking, true
		}
	}

	return model.Booking{}, false
}

// HasOverlap reports whether any booking of room in existing conflicts with [start, end).
func HasOverlap(room string, start, end time.Time, existing []model.Booking, excludeID int64) bool {
	_, found := FindConflict(room, start, end, existing, excludeID)

	return found
}

// CheckAvailability validates [start, end) and returns a *ConflictError when room is taken.
func CheckAvailability(room string, start, end time.Time, existing []model.Booking, excludeID int64) error {
	if err := ValidateRange(start, end); err != nil {
		return err
	}

	if booking, found := FindConflict(room, start, end, existing, excludeID); found {
		return &ConflictError{Room: room, Existing: booking}
	}

	return nil
}
