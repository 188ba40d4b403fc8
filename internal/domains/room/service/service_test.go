package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"homestay/config"
	otelMocks "homestay/infras/otel/mocks"
	bookingMocks "homestay/internal/domains/booking/mocks"
	roomMocks "homestay/internal/domains/room/mocks"
	"homestay/internal/domains/room/model"
	"homestay/internal/domains/room/model/dto"
	"homestay/internal/domains/room/pricing"
	"homestay/internal/domains/room/service"
	"homestay/shared/cache"
	cacheMocks "homestay/shared/cache/mocks"
	"homestay/shared/constant"
	"homestay/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *roomMocks.MockRoom
	bookings *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
	svc      service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     roomMocks.NewMockRoom(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.bookings, cfg, f.cache, otelMocks.NewOtel())

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func adminCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@homestay.id")
}

func TestRoomService_Create(t *testing.T) {
	t.Run("creates room with weekend rate defaulting to weekday", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
			assert.Equal(t, "Room A", room.Name)
			assert.Equal(t, int64(300000), room.WeekendRate)
			assert.True(t, room.Active)
			assert.Equal(t, "admin@homestay.id", room.CreatedBy)

			return nil
		})

		id, err := f.svc.Create(adminCtx(), dto.CreateRoomRequest{Name: "Room A", WeekdayRate: 300000})

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(adminCtx(), dto.CreateRoomRequest{Name: "Room A"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("insert failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.Create(adminCtx(), dto.CreateRoomRequest{Name: "Room A"})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestRoomService_Get(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r-1", Name: "Room A", WeekdayRate: 1}, nil)

	res, err := f.svc.Get(adminCtx(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, "Room A", res.Name)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

	_, err = f.svc.Get(adminCtx(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRoomService_Update(t *testing.T) {
	rate := int64(450000)

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(adminCtx(), dto.UpdateRoomRequest{}, "r-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("updates rate", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r-1", Name: "Room A"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, &rate, fields[model.FieldWeekendRate])
			assert.NotContains(t, fields, model.FieldName)

			return nil
		})

		err := f.svc.Update(adminCtx(), dto.UpdateRoomRequest{WeekendRate: &rate}, "r-1")

		assert.NoError(t, err)
	})

	t.Run("missing room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := f.svc.Update(adminCtx(), dto.UpdateRoomRequest{WeekendRate: &rate}, "r-9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("refuses rooms with bookings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r-1", Name: "Room A"}, nil)
		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Delete(adminCtx(), "r-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), "Room A")
	})

	t.Run("deletes unused room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r-1", Name: "Room A"}, nil)
		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(adminCtx(), "r-1"))
	})
}

func TestRoomService_PricingTable(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{
		{ID: "r-1", Name: "Room A", WeekdayRate: 300000, WeekendRate: 400000, Active: true},
		{ID: "r-2", Name: "Room B", WeekdayRate: 250000, WeekendRate: 250000, Active: true},
	}, nil)

	table, err := f.svc.PricingTable(adminCtx())

	require.NoError(t, err)
	assert.Equal(t, []string{"Room A", "Room B"}, table.Rooms())

	rate, ok := table.Rate("Room A")
	assert.True(t, ok)
	assert.Equal(t, pricing.Rate{Weekday: 300000, Weekend: 400000}, rate)
}
