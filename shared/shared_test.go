package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"homestay/shared"
	"homestay/shared/cache/mocks"
	"homestay/shared/constant"
	"homestay/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "numeric false", input: "0", expected: boolPtr(false)},
		{name: "empty", input: "", expected: nil},
		{name: "garbage", input: "yes please", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt64(t *testing.T) {
	id, err := shared.ConvertStringToInt64(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = shared.ConvertStringToInt64("room-a")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, expected int
	}{
		{total: 0, limit: 10, expected: 1},
		{total: 10, limit: 10, expected: 1},
		{total: 11, limit: 10, expected: 2},
		{total: 5, limit: 0, expected: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
	}
}

func TestTransformFields(t *testing.T) {
	type roomUpdate struct {
		WeekdayRate int64  `db:"weekday_rate"`
		WeekendRate int64  `db:"weekend_rate"`
		Name        string `db:"-"`
		Note        string
		Active      *bool `db:"active"`
	}

	inactive := false

	result := shared.TransformFields(roomUpdate{
		WeekdayRate: 350000,
		Name:        "Room A",
		Note:        "ignored",
		Active:      &inactive,
	}, "admin@homestay.id")

	assert.Equal(t, int64(350000), result["weekday_rate"])
	assert.Equal(t, &inactive, result["active"])
	assert.NotContains(t, result, "weekend_rate")
	assert.NotContains(t, result, "-")
	assert.NotContains(t, result, "Note")
	assert.Equal(t, "admin@homestay.id", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID(int64(7), "id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": int64(7)}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking", shared.BuildCacheKey("booking"))
	assert.Equal(t, "booking:id:7", shared.BuildCacheKey("booking", "id", int64(7)))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	roomA := dto.And(dto.Filter{Field: "room", Value: "Room A", Operator: dto.FilterOperatorEq})
	roomB := dto.And(dto.Filter{Field: "room", Value: "Room B", Operator: dto.FilterOperatorEq})

	first := shared.BuildCacheKeyWithQuery("booking:list", params, roomA)
	again := shared.BuildCacheKeyWithQuery("booking:list", params, roomA)
	other := shared.BuildCacheKeyWithQuery("booking:list", params, roomB)
	nextPage := shared.BuildCacheKeyWithQuery("booking:list", dto.QueryParams{Page: 2, Limit: 10}, roomA)

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
	assert.NotEqual(t, first, nextPage)
	assert.Regexp(t, `^booking:list:[0-9a-f]{40}$`, first)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "booking:*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "booking")

	redisCache.EXPECT().Clear(gomock.Any(), "room:*").Return(errors.New("redis down"))
	assert.NotPanics(t, func() {
		shared.InvalidateCaches(context.Background(), redisCache, "room")
	})
}

func boolPtr(b bool) *bool {
	return &b
}
