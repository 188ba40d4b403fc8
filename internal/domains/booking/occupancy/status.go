package occupancy

import "time"

type Status string

const (
	StatusBooked     Status = "booked"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCompleted  Status = "completed"
	StatusPaidInFull Status = "paid_in_full"
)

var statusLabels = map[Status]string{
	StatusBooked:     "Booked",
	StatusCheckedIn:  "Checked-in",
	StatusCheckedOut: "Checked-out",
	StatusCompleted:  "Selesai",
	StatusPaidInFull: "Lunas",
}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusBooked, StatusPaidInFull, StatusCheckedIn, StatusCheckedOut, StatusCompleted}
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}

	return string(s)
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]

	return ok
}

func (s Status) String() string {
	return string(s)
}

// DeriveStatus maps a stay and its outstanding balance to a status as of today.
// Occupancy wins over payment: balance only distinguishes stays that have not started.
func DeriveStatus(checkIn, checkOut time.Time, balanceDue int64, today time.Time) Status {
	in, out, now := Day(checkIn), Day(checkOut), Day(today)

	switch {
	case now.After(out):
		return StatusCompleted
	case now.Equal(out):
		return StatusCheckedOut
	case !now.Before(in):
		return StatusCheckedIn
	case balanceDue <= 0:
		return StatusPaidInFull
	default:
		return StatusBooked
	}
}
