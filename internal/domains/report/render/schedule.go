package render

import (
	"fmt"
	"time"

	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/occupancy"
)

const (
	// MaxScheduleDays bounds the width of the occupancy grid.
	MaxScheduleDays = 31

	roomColumnWidth = 35.0
	scheduleWidth   = 277.0
)

var weekdayInitials = [...]string{"M", "S", "S", "R", "K", "J", "S"}

// Schedule is the per-room occupancy of the nights in [From, To).
type Schedule struct {
	From     time.Time
	To       time.Time
	Rooms    []string
	Bookings []model.Booking
}

// Days lists every night in the window.
func (s Schedule) Days() []time.Time {
	var days []time.Time

	for night := occupancy.Day(s.From); night.Before(occupancy.Day(s.To)); night = night.AddDate(0, 0, 1) {
		days = append(days, night)
	}

	return days
}

// Occupant returns the booking holding room on the night starting at night.
func (s Schedule) Occupant(room string, night time.Time) (model.Booking, bool) {
	return occupancy.FindConflict(room, night, night.AddDate(0, 0, 1), s.Bookings, occupancy.NoExclusion)
}

func initials(name string) string {
	runes := []rune(name)
	if len(runes) > 3 { //nolint:mnd
		runes = runes[:3]
	}

	return string(runes)
}

// SchedulePDF renders rooms as rows and nights as columns, marking occupied nights with the guest.
func SchedulePDF(schedule Schedule, generatedAt time.Time) ([]byte, error) {
	days := schedule.Days()
	if len(days) == 0 || len(days) > MaxScheduleDays {
		return nil, fmt.Errorf("schedule must span 1 to %d nights, got %d", MaxScheduleDays, len(days))
	}

	pdf := newDocument("L", "Jadwal Kamar", generatedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	heading(pdf, "Jadwal Kamar", fmt.Sprintf("%s - %s", formatDay(schedule.From), formatDay(schedule.To)))

	cellWidth := (scheduleWidth - roomColumnWidth) / float64(len(days))

	pdf.SetFont(fontFamily, "B", 7)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	pdf.CellFormat(roomColumnWidth, rowHeight*2, "Kamar", "1", 0, "C", true, 0, "")

	x, y := pdf.GetXY()

	for i, night := range days {
		pdf.SetXY(x+float64(i)*cellWidth, y)
		pdf.CellFormat(cellWidth, rowHeight, night.Format("02"), "1", 2, "C", true, 0, "")
		pdf.CellFormat(cellWidth, rowHeight, weekdayInitials[night.Weekday()], "1", 0, "C", true, 0, "")
	}

	left, _, _, _ := pdf.GetMargins()
	pdf.SetXY(left, y+rowHeight*2)
	pdf.SetTextColor(0, 0, 0)

	for _, room := range schedule.Rooms {
		pdf.SetFont(fontFamily, "B", 7)
		pdf.CellFormat(roomColumnWidth, rowHeight, tr(room), "1", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 6)

		for _, night := range days {
			booking, taken := schedule.Occupant(room, night)
			if !taken {
				pdf.CellFormat(cellWidth, rowHeight, "", "1", 0, "C", false, 0, "")

				continue
			}

			pdf.SetFillColor(189, 215, 238)
			pdf.CellFormat(cellWidth, rowHeight, tr(initials(booking.GuestName)), "1", 0, "C", true, 0, "")
		}

		pdf.Ln(-1)
	}

	return output(pdf)
}
