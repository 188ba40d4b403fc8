package service_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"homestay/config"
	otelMocks "homestay/infras/otel/mocks"
	s3Mocks "homestay/infras/s3/mocks"
	bookingMocks "homestay/internal/domains/booking/mocks"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/report/service"
	"homestay/internal/domains/room/pricing"
	roomMocks "homestay/internal/domains/room/service/mocks"
	"homestay/shared/constant"
	"homestay/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	bookings *bookingMocks.MockBooking
	rooms    *roomMocks.MockRoom
	storage  *s3Mocks.MockS3
	svc      service.Report
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		storage:  s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.External.S3.ReportDirectory = "reports"

	f.svc = service.New(f.bookings, f.rooms, f.storage, cfg, otelMocks.NewOtel())

	return f
}

func day(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return t
}

var sample = []model.Booking{
	{ID: 1, GuestName: "Budi", Room: "Room A", CheckIn: day("2024-04-01"), CheckOut: day("2024-04-03"), Total: 600000, Deposit: 100000, BalanceDue: 500000},
	{ID: 2, GuestName: "Sari", Room: "Room C", CheckIn: day("2024-04-02"), CheckOut: day("2024-04-04"), Total: 400000, Deposit: 400000},
}

func isPDF(t *testing.T, data []byte) {
	t.Helper()

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestReportService_Summary(t *testing.T) {
	t.Run("all bookings", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().ListAll(gomock.Any()).Return(sample, nil)

		res, err := f.svc.Summary(context.Background(), time.Time{}, time.Time{})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Bookings)
		assert.Equal(t, int64(1000000), res.Revenue)
		assert.Equal(t, int64(500000), res.Deposits)
		assert.Equal(t, int64(500000), res.Outstanding)
		assert.Empty(t, res.From)
	})

	t.Run("window", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().ListBetween(gomock.Any(), day("2024-04-01"), day("2024-05-01")).Return(sample[:1], nil)

		res, err := f.svc.Summary(context.Background(), day("2024-04-01"), day("2024-05-01"))

		require.NoError(t, err)
		assert.Equal(t, 1, res.Bookings)
		assert.Equal(t, "2024-04-01", res.From)
		assert.Equal(t, "2024-05-01", res.To)
	})

	t.Run("stay crossing the window counts in full", func(t *testing.T) {
		f := newFixture(t)

		crossing := model.Booking{
			ID: 9, Room: "Room A", CheckIn: day("2024-04-29"), CheckOut: day("2024-05-03"),
			Total: 1200000, Deposit: 200000, BalanceDue: 1000000,
		}

		f.bookings.EXPECT().ListBetween(gomock.Any(), day("2024-04-01"), day("2024-05-01")).Return([]model.Booking{crossing}, nil)

		res, err := f.svc.Summary(context.Background(), day("2024-04-01"), day("2024-05-01"))

		require.NoError(t, err)
		assert.Equal(t, int64(1200000), res.Revenue)
		assert.Equal(t, 4, res.Nights)
		assert.Equal(t, int64(1000000), res.Outstanding)
	})

	tests := []struct {
		name string
		from time.Time
		to   time.Time
	}{
		{name: "only from", from: day("2024-04-01")},
		{name: "reversed", from: day("2024-05-01"), to: day("2024-04-01")},
		{name: "empty window", from: day("2024-04-01"), to: day("2024-04-01")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Summary(context.Background(), tt.from, tt.to)

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestReportService_Spreadsheet(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().ListAll(gomock.Any()).Return(sample, nil)

	file, err := f.svc.Spreadsheet(context.Background())

	require.NoError(t, err)
	assert.Equal(t, constant.ContentTypeXLSX, file.ContentType)
	assert.True(t, strings.HasPrefix(file.Name, "laporan-booking-"))
	assert.True(t, strings.HasSuffix(file.Name, ".xlsx"))
	assert.NotEmpty(t, file.Data)
}

func TestReportService_BookingsPDF(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().ListAll(gomock.Any()).Return(sample, nil)

	file, err := f.svc.BookingsPDF(context.Background())

	require.NoError(t, err)
	assert.Equal(t, constant.ContentTypePDF, file.ContentType)
	isPDF(t, file.Data)
}

func TestReportService_SchedulePDF(t *testing.T) {
	t.Run("renders active rooms and rooms with bookings", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().PricingTable(gomock.Any()).Return(pricing.NewTable(map[string]pricing.Rate{
			"Room A": {Weekday: 1, Weekend: 1},
			"Room B": {Weekday: 1, Weekend: 1},
		}), nil)
		f.bookings.EXPECT().ListBetween(gomock.Any(), day("2024-04-01"), day("2024-04-08")).Return(sample, nil)

		file, err := f.svc.SchedulePDF(context.Background(), day("2024-04-01"), day("2024-04-08"))

		require.NoError(t, err)
		assert.Equal(t, "jadwal-20240401-20240408.pdf", file.Name)
		isPDF(t, file.Data)
	})

	t.Run("window too wide", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.SchedulePDF(context.Background(), day("2024-01-01"), day("2024-03-01"))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReportService_InvoicePDF(t *testing.T) {
	t.Run("single booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sample[1], nil)

		file, err := f.svc.InvoicePDF(context.Background(), 2)

		require.NoError(t, err)
		assert.Equal(t, "inv-000002.pdf", file.Name)
		isPDF(t, file.Data)
	})

	t.Run("grouped booking lists its group", func(t *testing.T) {
		f := newFixture(t)

		grouped := sample[0]
		grouped.GroupID = "0f8fad5b-d9cb-469f-a165-70867728950e"

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(grouped, nil)
		f.bookings.EXPECT().ListByGroup(gomock.Any(), grouped.GroupID).Return([]model.Booking{grouped, grouped}, nil)

		file, err := f.svc.InvoicePDF(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "inv-g0f8fad5b.pdf", file.Name)
		isPDF(t, file.Data)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.InvoicePDF(context.Background(), 9)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReportService_Archive(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().ListAll(gomock.Any()).Return(sample, nil)
	f.storage.EXPECT().UploadFileBytes(gomock.Any(), "reports", gomock.Any(), constant.ContentTypeXLSX, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, name, _ string, data []byte) (string, error) {
			assert.NotEmpty(t, data)

			return "https://cdn.homestay.id/reports/" + name, nil
		})

	res, err := f.svc.Archive(context.Background())

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.FileName, ".xlsx"))
	assert.Equal(t, "https://cdn.homestay.id/reports/"+res.FileName, res.URL)
}

func TestReportService_DeleteArchive(t *testing.T) {
	const url = "https://cdn.homestay.id/reports/laporan-booking-20240401-1a2b3c4d.xlsx"

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)

		f.storage.EXPECT().GetObjectNameFromURL(url).Return("reports/laporan-booking-20240401-1a2b3c4d.xlsx")
		f.storage.EXPECT().DeleteFile(gomock.Any(), "reports", "laporan-booking-20240401-1a2b3c4d.xlsx").Return(nil)

		require.NoError(t, f.svc.DeleteArchive(context.Background(), url))
	})

	tests := []struct {
		name   string
		object string
	}{
		{name: "foreign url", object: ""},
		{name: "outside the report directory", object: "rooms/photo.xlsx"},
		{name: "nested object", object: "reports/2024/laporan.xlsx"},
		{name: "not a spreadsheet", object: "reports/laporan.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.storage.EXPECT().GetObjectNameFromURL(gomock.Any()).Return(tt.object)

			err := f.svc.DeleteArchive(context.Background(), "https://example.com/x")

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)

		f.storage.EXPECT().GetObjectNameFromURL(url).Return("reports/laporan.xlsx")
		f.storage.EXPECT().DeleteFile(gomock.Any(), "reports", "laporan.xlsx").Return(assert.AnError)

		err := f.svc.DeleteArchive(context.Background(), url)

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestReportService_CanceledCaller(t *testing.T) {
	f := newFixture(t)

	release := make(chan struct{})
	defer close(release)

	f.bookings.EXPECT().ListAll(gomock.Any()).DoAndReturn(func(context.Context) ([]model.Booking, error) {
		<-release

		return sample, nil
	}).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Spreadsheet(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
