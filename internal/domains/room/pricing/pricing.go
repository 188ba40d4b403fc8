// Package pricing computes stay totals from per-room weekday and weekend rates.
package pricing

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"homestay/internal/domains/booking/occupancy"
)

var ErrUnknownRoom = errors.New("room has no rate")

type Rate struct {
	Weekday int64 `json:"weekday"`
	Weekend int64 `json:"weekend"`
}

// For returns the rate of the night starting on day. Friday and Saturday nights are weekend nights.
func (r Rate) For(day time.Time) int64 {
	switch day.Weekday() {
	case time.Friday, time.Saturday:
		return r.Weekend
	default:
		return r.Weekday
	}
}

// Table is an immutable room -> rate mapping. The zero value is an empty table.
type Table struct {
	rates map[string]Rate
}

func NewTable(rates map[string]Rate) Table {
	return Table{rates: maps.Clone(rates)}
}

func (t Table) Rate(room string) (Rate, bool) {
	rate, ok := t.rates[room]

	return rate, ok
}

func (t Table) Rooms() []string {
	return slices.Sorted(maps.Keys(t.rates))
}

func (t Table) Len() int {
	return len(t.rates)
}

// Total sums the nightly rate of room for every night in [checkIn, checkOut).
func (t Table) Total(room string, checkIn, checkOut time.Time) (int64, error) {
	rate, ok := t.rates[room]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRoom, room)
	}

	var total int64

	for night := occupancy.Day(checkIn); night.Before(occupancy.Day(checkOut)); night = night.AddDate(0, 0, 1) {
		total += rate.For(night)
	}

	return total, nil
}

// Flat prices every night of the stay at nightlyRate. A reversed stay costs nothing.
func Flat(nightlyRate int64, checkIn, checkOut time.Time) int64 {
	return int64(max(occupancy.Nights(checkIn, checkOut), 0)) * nightlyRate
}
