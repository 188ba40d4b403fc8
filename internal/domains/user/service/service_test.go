package service_test

import (
	"context"
	"net/http"
	"testing"

	"homestay/config"
	otelMocks "homestay/infras/otel/mocks"
	userMocks "homestay/internal/domains/user/mocks"
	"homestay/internal/domains/user/model"
	"homestay/internal/domains/user/model/dto"
	"homestay/internal/domains/user/service"
	"homestay/shared/cache"
	cacheMocks "homestay/shared/cache/mocks"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, cfg, f.cache, otelMocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func (f fixture) missCache() {
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserEmail, "admin@homestay.id")
}

func ptr[T any](v T) *T {
	return &v
}

func TestUserService_GetAll(t *testing.T) {
	f := newFixture(t)
	f.missCache()

	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.User{
		{ID: "u1", Email: "sari@homestay.id", Role: constant.RoleStaff, Active: true},
	}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "sari@homestay.id", res.Users[0].Email)
}

func TestUserService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.missCache()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", FullName: "Sari", Role: constant.RoleStaff}, nil)

		res, err := f.svc.Get(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, "Sari", res.FullName)
	})

	t.Run("cached", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "user:get:u1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, ok := value.(*dto.UserResponse)
			require.True(t, ok)
			res.ID = "u1"

			return nil
		})

		res, err := f.svc.Get(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, "u1", res.ID)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		f.missCache()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := f.svc.Get(context.Background(), "u9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	t.Run("deactivates staff", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, ptr(false), fields[model.FieldActive])
			assert.Equal(t, "admin@homestay.id", fields[constant.FieldModifiedBy])
			assert.NotContains(t, fields, model.FieldRole)

			return nil
		})

		err := f.svc.Update(adminCtx(), dto.UpdateUserRequest{Active: ptr(false)}, "u1")

		assert.NoError(t, err)
	})

	tests := []struct {
		name string
		req  dto.UpdateUserRequest
		id   string
	}{
		{name: "empty", req: dto.UpdateUserRequest{}, id: "u1"},
		{name: "self demotion", req: dto.UpdateUserRequest{Role: ptr(constant.RoleStaff)}, id: "admin-1"},
		{name: "self deactivation", req: dto.UpdateUserRequest{Active: ptr(false)}, id: "admin-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			err := f.svc.Update(adminCtx(), tt.req, tt.id)

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}

	t.Run("renaming self is allowed", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Update(adminCtx(), dto.UpdateUserRequest{FullName: ptr("Pemilik")}, "admin-1")

		assert.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(adminCtx(), dto.UpdateUserRequest{FullName: ptr("Budi")}, "u9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("deletes staff", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(adminCtx(), "u1"))
	})

	t.Run("refuses self", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(adminCtx(), "admin-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(adminCtx(), "u9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
