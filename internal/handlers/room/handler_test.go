package room_test

import (
	"context"
	"net/http"
	"testing"

	otelMocks "homestay/infras/otel/mocks"
	"homestay/internal/domains/room/model/dto"
	"homestay/internal/domains/room/service/mocks"
	"homestay/internal/handlers/handlertest"
	"homestay/internal/handlers/room"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockRoom, room.Handler) {
	t.Helper()

	svc := mocks.NewMockRoom(gomock.NewController(t))

	return svc, room.New(svc, handlertest.Admin(), otelMocks.NewOtel())
}

func TestHandler_CreateRoom(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, handler := setup(t)

		req := dto.CreateRoomRequest{Name: "Room A", Capacity: 2, WeekdayRate: 300000, WeekendRate: 400000}
		svc.EXPECT().Create(gomock.Any(), req).Return("r1", nil)

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/rooms", req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var res struct {
			ID string `json:"id"`
		}
		handlertest.Decode(t, rec, &res)
		assert.Equal(t, "r1", res.ID)
	})

	t.Run("missing name", func(t *testing.T) {
		_, handler := setup(t)

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/rooms", dto.CreateRoomRequest{WeekdayRate: 1})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name is required", handlertest.ErrorMessage(t, rec))
	})

	t.Run("negative rate", func(t *testing.T) {
		_, handler := setup(t)

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/rooms", dto.CreateRoomRequest{Name: "Room A", WeekdayRate: -1})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, handler := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", failure.Conflict("room already exists"))

		rec := handlertest.Serve(t, handler.Router, http.MethodPost, "/v1/rooms", dto.CreateRoomRequest{Name: "Room A"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_GetRooms(t *testing.T) {
	svc, handler := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error) {
			assert.Equal(t, "name", params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			where, args := filter.GetWhereClause()
			assert.Equal(t, "(rooms.active = :active)", where)
			assert.Equal(t, map[string]any{"active": true}, args)

			return dto.GetRoomsResponse{Rooms: []dto.RoomResponse{{Name: "Room A"}}, TotalData: 1, TotalPage: 1}, nil
		})

	rec := handlertest.Serve(t, handler.Router, http.MethodGet, "/v1/rooms?active=true&sort_by=guest_phone", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var res dto.GetRoomsResponse
	handlertest.Decode(t, rec, &res)
	assert.Equal(t, "Room A", res.Rooms[0].Name)
}

func TestHandler_GetRoomByID(t *testing.T) {
	svc, handler := setup(t)

	svc.EXPECT().Get(gomock.Any(), "r1").Return(dto.RoomResponse{ID: "r1", Name: "Room A"}, nil)

	rec := handlertest.Serve(t, handler.Router, http.MethodGet, "/v1/rooms/r1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_UpdateRoom(t *testing.T) {
	svc, handler := setup(t)

	rate := int64(350000)
	svc.EXPECT().Update(gomock.Any(), dto.UpdateRoomRequest{WeekdayRate: &rate}, "r1").Return(nil)

	rec := handlertest.Serve(t, handler.Router, http.MethodPatch, "/v1/rooms/r1", map[string]any{"weekday_rate": 350000})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_DeleteRoom(t *testing.T) {
	svc, handler := setup(t)

	svc.EXPECT().Delete(gomock.Any(), "r1").Return(failure.Conflict("room Room A still has bookings"))

	rec := handlertest.Serve(t, handler.Router, http.MethodDelete, "/v1/rooms/r1", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "room Room A still has bookings", handlertest.ErrorMessage(t, rec))
}
