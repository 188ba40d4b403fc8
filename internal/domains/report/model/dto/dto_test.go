package dto_test

import (
	"testing"
	"time"

	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/occupancy"
	"homestay/internal/domains/report/model/dto"

	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestSummaryResponse_FromBookings(t *testing.T) {
	bookings := []model.Booking{
		{Room: "Room B", CheckIn: day("2024-04-01"), CheckOut: day("2024-04-03"), Total: 500000, Deposit: 100000, BalanceDue: 400000},
		{Room: "Room A", CheckIn: day("2024-04-02"), CheckOut: day("2024-04-05"), Total: 900000, Deposit: 1000000, BalanceDue: -100000},
		{Room: "Room B", CheckIn: day("2024-04-10"), CheckOut: day("2024-04-11"), Total: 250000, BalanceDue: 250000},
	}

	var summary dto.SummaryResponse
	summary.FromBookings(bookings, day("2024-04-03"))

	assert.Equal(t, 3, summary.Bookings)
	assert.Equal(t, 6, summary.Nights)
	assert.Equal(t, int64(1650000), summary.Revenue)
	assert.Equal(t, int64(1100000), summary.Deposits)
	assert.Equal(t, int64(650000), summary.Outstanding)

	assert.Equal(t, []dto.RoomRevenue{
		{Room: "Room A", Bookings: 1, Nights: 3, Revenue: 900000},
		{Room: "Room B", Bookings: 2, Nights: 3, Revenue: 750000},
	}, summary.ByRoom)

	counts := map[string]int{}
	for _, status := range summary.ByStatus {
		counts[status.Status] = status.Count
	}

	assert.Len(t, summary.ByStatus, len(occupancy.Statuses()))
	assert.Equal(t, 1, counts[occupancy.StatusCheckedOut.String()])
	assert.Equal(t, 1, counts[occupancy.StatusCheckedIn.String()])
	assert.Equal(t, 1, counts[occupancy.StatusBooked.String()])
	assert.Equal(t, 0, counts[occupancy.StatusCompleted.String()])
}

func TestSummaryResponse_Window(t *testing.T) {
	var summary dto.SummaryResponse

	summary.Window(time.Time{}, day("2024-05-01"))

	assert.Empty(t, summary.From)
	assert.Equal(t, "2024-05-01", summary.To)
}

func TestInvoice_FromBookings(t *testing.T) {
	bookings := []model.Booking{
		{ID: 1, GroupID: "g", GuestName: "Sari", GuestPhone: "0813", Room: "Room A", CheckIn: day("2024-04-01"), CheckOut: day("2024-04-03"), Total: 600000, Deposit: 600000},
		{ID: 2, GroupID: "g", GuestName: "Sari", GuestPhone: "0813", Room: "Room B", CheckIn: day("2024-04-01"), CheckOut: day("2024-04-03"), Total: 500000, BalanceDue: 500000},
	}

	var invoice dto.Invoice
	invoice.FromBookings("INV-g", bookings, day("2024-04-01"), day("2024-04-01"))

	assert.Equal(t, "Sari", invoice.GuestName)
	assert.Len(t, invoice.Items, 2)
	assert.Equal(t, int64(1100000), invoice.Total)
	assert.Equal(t, int64(500000), invoice.BalanceDue)
	assert.False(t, invoice.Paid())

	invoice.BalanceDue = 0
	assert.True(t, invoice.Paid())
}
