package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	otelMocks "homestay/infras/otel/mocks"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/service/mocks"
	reportDto "homestay/internal/domains/report/model/dto"
	reportMocks "homestay/internal/domains/report/service/mocks"
	"homestay/internal/handlers/booking"
	"homestay/internal/handlers/handlertest"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc     *mocks.MockBooking
	report  *reportMocks.MockReport
	handler booking.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		svc:    mocks.NewMockBooking(ctrl),
		report: reportMocks.NewMockReport(ctrl),
	}

	f.handler = booking.New(f.svc, f.report, handlertest.Staff(), otelMocks.NewOtel())

	return f
}

func (f fixture) serve(t *testing.T, method, target string, body any) (int, string) {
	t.Helper()

	rec := handlertest.Serve(t, f.handler.Router, method, target, body)

	if rec.Code >= http.StatusBadRequest {
		return rec.Code, handlertest.ErrorMessage(t, rec)
	}

	return rec.Code, ""
}

func TestHandler_CreateBooking(t *testing.T) {
	valid := dto.CreateBookingRequest{
		GuestName:  "Budi",
		GuestPhone: "+6281234567890",
		Room:       "Room A",
		CheckIn:    "2024-04-01",
		CheckOut:   "2024-04-03",
		Deposit:    100000,
	}

	t.Run("created", func(t *testing.T) {
		f := newFixture(t)

		f.svc.EXPECT().Create(gomock.Any(), valid).Return(int64(7), nil)

		rec := handlertest.Serve(t, f.handler.Router, http.MethodPost, "/v1/bookings", valid)

		require.Equal(t, http.StatusCreated, rec.Code)

		var res struct {
			ID int64 `json:"id"`
		}
		handlertest.Decode(t, rec, &res)
		assert.Equal(t, int64(7), res.ID)
	})

	t.Run("conflict names the room", func(t *testing.T) {
		f := newFixture(t)

		f.svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(int64(0), failure.Conflict("room Room A is already booked from 2024-04-01 to 2024-04-03"))

		code, msg := f.serve(t, http.MethodPost, "/v1/bookings", valid)

		assert.Equal(t, http.StatusConflict, code)
		assert.Contains(t, msg, "Room A")
	})

	t.Run("invalid date range", func(t *testing.T) {
		f := newFixture(t)

		req := valid
		req.CheckOut = req.CheckIn

		f.svc.EXPECT().Create(gomock.Any(), req).Return(int64(0), failure.BadRequestFromString("check_out must be after check_in"))

		code, msg := f.serve(t, http.MethodPost, "/v1/bookings", req)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "check_out must be after check_in", msg)
	})

	tests := []struct {
		name   string
		mutate func(*dto.CreateBookingRequest)
		msg    string
	}{
		{name: "missing guest", mutate: func(r *dto.CreateBookingRequest) { r.GuestName = "" }, msg: "guest_name is required"},
		{name: "bad phone", mutate: func(r *dto.CreateBookingRequest) { r.GuestPhone = "call me" }, msg: "guest_phone must be a valid phone number"},
		{name: "bad date", mutate: func(r *dto.CreateBookingRequest) { r.CheckIn = "01/04/2024" }, msg: "check_in must be a date formatted as YYYY-MM-DD"},
		{name: "negative deposit", mutate: func(r *dto.CreateBookingRequest) { r.Deposit = -1 }, msg: "deposit must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			req := valid
			tt.mutate(&req)

			code, msg := f.serve(t, http.MethodPost, "/v1/bookings", req)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestHandler_CreateGroupBooking(t *testing.T) {
	f := newFixture(t)

	req := dto.CreateGroupBookingRequest{
		GuestName:  "Keluarga Sari",
		GuestPhone: "081234567890",
		Rooms:      []string{"Room A", "Room B"},
		CheckIn:    "2024-04-01",
		CheckOut:   "2024-04-03",
	}

	f.svc.EXPECT().CreateGroup(gomock.Any(), req).
		Return(dto.CreateGroupBookingResponse{GroupID: "g1", IDs: []int64{1, 2}, Total: 1100000}, nil)

	rec := handlertest.Serve(t, f.handler.Router, http.MethodPost, "/v1/bookings/group", req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var res dto.CreateGroupBookingResponse
	handlertest.Decode(t, rec, &res)
	assert.Equal(t, []int64{1, 2}, res.IDs)
}

func TestHandler_GetBookings(t *testing.T) {
	t.Run("combines filters", func(t *testing.T) {
		f := newFixture(t)

		f.svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
				assert.Equal(t, "check_in", params.SortBy)

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "bookings.room = :room")
				assert.Contains(t, where, "bookings.check_in < :window_end")
				assert.Contains(t, where, "bookings.check_out > :window_start")
				assert.Equal(t, "Room A", args["room"])

				return dto.GetBookingsResponse{TotalData: 1}, nil
			})

		code, _ := f.serve(t, http.MethodGet, "/v1/bookings?room=Room+A&from=2024-04-01&to=2024-05-01&sort_by=guest_phone", nil)

		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("status filter", func(t *testing.T) {
		f := newFixture(t)

		f.svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
				where, _ := filter.GetWhereClause()
				assert.Contains(t, where, "bookings.check_out = :status_today")

				return dto.GetBookingsResponse{}, nil
			})

		code, _ := f.serve(t, http.MethodGet, "/v1/bookings?status=checked_out", nil)

		assert.Equal(t, http.StatusOK, code)
	})

	tests := []struct {
		name  string
		query string
		msg   string
	}{
		{name: "unknown status", query: "status=cancelled", msg: "status must be one of booked paid_in_full checked_in checked_out completed"},
		{name: "bad group", query: "group_id=abc", msg: "group_id must be a valid UUID"},
		{name: "half window", query: "from=2024-04-01", msg: "from and to must be given together"},
		{name: "reversed window", query: "from=2024-05-01&to=2024-04-01", msg: "to must be after from"},
		{name: "malformed date", query: "from=april&to=2024-04-01", msg: "from must be a date formatted as YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			code, msg := f.serve(t, http.MethodGet, "/v1/bookings?"+tt.query, nil)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestHandler_CheckAvailability(t *testing.T) {
	t.Run("free", func(t *testing.T) {
		f := newFixture(t)

		f.svc.EXPECT().Availability(gomock.Any(), dto.AvailabilityRequest{Room: "Room A", CheckIn: "2024-04-03", CheckOut: "2024-04-06"}).
			Return(dto.AvailabilityResponse{Room: "Room A", Available: true, Nights: 3, Total: 1000000}, nil)

		rec := handlertest.Serve(t, f.handler.Router, http.MethodGet, "/v1/bookings/availability?room=Room+A&check_in=2024-04-03&check_out=2024-04-06", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var res dto.AvailabilityResponse
		handlertest.Decode(t, rec, &res)
		assert.True(t, res.Available)
		assert.Equal(t, 3, res.Nights)
	})

	t.Run("missing room", func(t *testing.T) {
		f := newFixture(t)

		code, msg := f.serve(t, http.MethodGet, "/v1/bookings/availability?check_in=2024-04-03&check_out=2024-04-06", nil)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "room is required", msg)
	})
}

func TestHandler_GetBookingByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.svc.EXPECT().Get(gomock.Any(), int64(3)).Return(dto.BookingResponse{ID: 3, Status: "booked"}, nil)

		code, _ := f.serve(t, http.MethodGet, "/v1/bookings/3", nil)

		assert.Equal(t, http.StatusOK, code)
	})

	for _, id := range []string{"abc", "0", "-4"} {
		t.Run("bad id "+id, func(t *testing.T) {
			f := newFixture(t)

			code, msg := f.serve(t, http.MethodGet, "/v1/bookings/"+id, nil)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "id must be a positive number", msg)
		})
	}

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.svc.EXPECT().Get(gomock.Any(), int64(99)).Return(dto.BookingResponse{}, failure.NotFound("booking 99 not found"))

		code, _ := f.serve(t, http.MethodGet, "/v1/bookings/99", nil)

		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestHandler_GetInvoice(t *testing.T) {
	f := newFixture(t)

	pdf := []byte("%PDF-1.3 invoice")
	f.report.EXPECT().InvoicePDF(gomock.Any(), int64(2)).
		Return(reportDto.File{Name: "inv-000002.pdf", ContentType: constant.ContentTypePDF, Data: pdf}, nil)

	rec := handlertest.Serve(t, f.handler.Router, http.MethodGet, "/v1/bookings/2/invoice", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContentTypePDF, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Equal(t, `attachment; filename="inv-000002.pdf"`, rec.Header().Get(constant.RequestHeaderDisposition))
	assert.Equal(t, fmt.Sprint(len(pdf)), rec.Header().Get(constant.RequestHeaderContentLength))
	assert.Equal(t, pdf, rec.Body.Bytes())
}

func TestHandler_UpdateBooking(t *testing.T) {
	t.Run("moves the stay", func(t *testing.T) {
		f := newFixture(t)

		checkOut := "2024-04-06"
		f.svc.EXPECT().Update(gomock.Any(), dto.UpdateBookingRequest{CheckOut: &checkOut}, int64(5)).Return(nil)

		code, _ := f.serve(t, http.MethodPatch, "/v1/bookings/5", map[string]any{"check_out": checkOut})

		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("conflict", func(t *testing.T) {
		f := newFixture(t)

		f.svc.EXPECT().Update(gomock.Any(), gomock.Any(), int64(5)).
			Return(failure.Conflict("room Room A is already booked from 2024-04-03 to 2024-04-06"))

		code, _ := f.serve(t, http.MethodPatch, "/v1/bookings/5", map[string]any{"room": "Room A"})

		assert.Equal(t, http.StatusConflict, code)
	})
}

func TestHandler_DeleteBooking(t *testing.T) {
	f := newFixture(t)

	f.svc.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)

	code, _ := f.serve(t, http.MethodDelete, "/v1/bookings/5", nil)

	assert.Equal(t, http.StatusOK, code)
}
