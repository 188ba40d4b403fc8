package report_test

import (
	"net/http"
	"testing"
	"time"

	otelMocks "homestay/infras/otel/mocks"
	"homestay/internal/domains/report/model/dto"
	"homestay/internal/domains/report/service/mocks"
	"homestay/internal/handlers/handlertest"
	"homestay/internal/handlers/report"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockReport, report.Handler) {
	t.Helper()

	svc := mocks.NewMockReport(gomock.NewController(t))

	return svc, report.New(svc, handlertest.Staff(), otelMocks.NewOtel())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHandler_GetSummary(t *testing.T) {
	t.Run("window", func(t *testing.T) {
		svc, handler := setup(t)

		svc.EXPECT().Summary(gomock.Any(), day(2024, 4, 1), day(2024, 5, 1)).
			Return(dto.SummaryResponse{Bookings: 2, Revenue: 1000000}, nil)

		rec := handlertest.Serve(t, handler.Router, http.MethodGet, "/v1/reports/summary?from=2024-04-01&to=2024-05-01", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var res dto.SummaryResponse
		handlertest.Decode(t, rec, &res)
		assert.Equal(t, int64(1000000), res.Revenue)
	})

	t.Run("all time", func(t *testing.T) {
		svc, handler := setup(t)

		svc.EXPECT().Summary(gomock.Any(), time.Time{}, time.Time{}).Return(dto.SummaryResponse{}, nil)

		rec := handlertest.Serve(t, handler.Router, http.MethodGet, "/v1/reports/summary", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("service rejects the window", func(t *testing.T) {
		svc, handler := setup(t)

		svc.EXPECT().Summary(gomock.Any(), day(2024, 4, 1), time.Time{}).
			Return(dto.SummaryResponse{}, failure.BadRequestFromString("from and to must be given together"))

		rec := handlertest.Serve(t, handler.Router, http.MethodGet, "/v1/reports/summary?from=2024-04-01", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetSpreadsheet(t *testing.T) {
	svc, handler := setup(t)

	svc.EXPECT().Spreadsheet(gomock.Any()).
		Return(dto.File{Name: "laporan-booking-20240401.xlsx", ContentType: constant.ContentTypeXLSX, Data: []byte("PK")}, nil)

	rec := handlertest.Serve(t, handler.Router, http.MethodGet, "/v1/reports/bookings.xlsx", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContentTypeXLSX, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Equal(t, `attachment; filename="laporan-booking-20240401.xlsx"`, rec.Header().Get(constant.RequestHeaderDisposition))
}

func TestHandler_GetBookingsPDF(t *testing.T) {
	svc, handler := setup(t)

	svc.EXPECT().BookingsPDF(gomock.Any()).Return(dto.File{}, assert.AnError)

	rec := handlertest.Serve(t, handler.Router, http.MethodGet, "/v1/reports/bookings.pdf", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_GetSchedulePDF(t *testing.T) {
	t.Run("explicit window", func(t *testing.T) {
		svc, handler := setup(t)

		svc.EXPECT().SchedulePDF(gomock.Any(), day(2024, 4, 1), day(2024, 4, 8)).
			Return(dto.File{Name: "jadwal-20240401-20240408.pdf", ContentType: constant.ContentTypePDF, Data: []byte("%PDF-")}, nil)

		rec := handlertest.Serve(t, handler.Router, http.MethodGet, "/v1/reports/schedule.pdf?from=2024-04-01&to=2024-04-08", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "%PDF-", rec.Body.String())
	})

	t.Run("defaults to the coming week", func(t *testing.T) {
		svc, handler := setup(t)

		today := timezone.Today()

		svc.EXPECT().SchedulePDF(gomock.Any(), today, today.AddDate(0, 0, 7)).
			Return(dto.File{Name: "jadwal.pdf", ContentType: constant.ContentTypePDF}, nil)

		rec := handlertest.Serve(t, handler.Router, http.MethodGet, "/v1/reports/schedule.pdf", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, handler := setup(t)

		rec := handlertest.Serve(t, handler.Router, http.MethodGet, "/v1/reports/schedule.pdf?from=tomorrow", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Archive(t *testing.T) {
	svc, handler := setup(t)

	svc.EXPECT().Archive(gomock.Any()).
		Return(dto.ArchiveResponse{FileName: "laporan.xlsx", URL: "https://cdn.homestay.id/reports/laporan.xlsx"}, nil)

	rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/reports/archive", nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var res dto.ArchiveResponse
	handlertest.Decode(t, rec, &res)
	assert.Equal(t, "laporan.xlsx", res.FileName)
}

func TestHandler_DeleteArchive(t *testing.T) {
	const url = "https://cdn.homestay.id/reports/laporan.xlsx"

	t.Run("deleted", func(t *testing.T) {
		svc, handler := setup(t)

		svc.EXPECT().DeleteArchive(gomock.Any(), url).Return(nil)

		rec := handlertest.Serve(t, handler.Router, http.MethodDelete, "/v1/reports/archive", dto.DeleteArchiveRequest{URL: url})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing url", func(t *testing.T) {
		_, handler := setup(t)

		rec := handlertest.Serve(t, handler.Router, http.MethodDelete, "/v1/reports/archive", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "url is required", handlertest.ErrorMessage(t, rec))
	})

	t.Run("not an archive", func(t *testing.T) {
		svc, handler := setup(t)

		svc.EXPECT().DeleteArchive(gomock.Any(), url).Return(failure.BadRequestFromString("url is not an archived report"))

		rec := handlertest.Serve(t, handler.Router, http.MethodDelete, "/v1/reports/archive", dto.DeleteArchiveRequest{URL: url})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
