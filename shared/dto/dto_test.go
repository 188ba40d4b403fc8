package dto_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homestay/shared/constant"
	"homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "admin@homestay.id",
		ModifiedBy: "staff@homestay.id",
	})

	assert.Equal(t, "admin@homestay.id", metadata.CreatedBy)
	assert.Equal(t, "staff@homestay.id", metadata.ModifiedBy)
	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEmpty(t, metadata.ModifiedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=check_in&sort_dir=desc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in", SortDir: dto.SortDirDesc},
		},
		{
			name:           "defaults applied",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			query:          "page=abc&limit=-5",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "unknown sort direction is ignored",
			query:    "sort_by=room&sort_dir=sideways",
			expected: dto.QueryParams{SortBy: "room"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/bookings?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Restrict(t *testing.T) {
	params := dto.QueryParams{SortBy: "password; DROP TABLE bookings"}
	params.Restrict("check_in", "check_in", "room")

	assert.Equal(t, "check_in", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)

	params = dto.QueryParams{SortBy: "room", SortDir: dto.SortDirDesc}
	params.Restrict("check_in", "check_in", "room")

	assert.Equal(t, "room", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.Filter
		where  string
		args   map[string]any
	}{
		{
			name:   "eq with table",
			filter: dto.Filter{Field: "room", Value: "Room A", Operator: dto.FilterOperatorEq, Table: "bookings"},
			where:  "bookings.room = :room",
			args:   map[string]any{"room": "Room A"},
		},
		{
			name:   "less with arg name",
			filter: dto.Filter{ArgName: "candidate_end", Field: "check_in", Value: "2025-04-03", Operator: dto.FilterOperatorLess},
			where:  "check_in < :candidate_end",
			args:   map[string]any{"candidate_end": "2025-04-03"},
		},
		{
			name:   "greater",
			filter: dto.Filter{Field: "check_out", Value: "2025-04-01", Operator: dto.FilterOperatorGreater},
			where:  "check_out > :check_out",
			args:   map[string]any{"check_out": "2025-04-01"},
		},
		{
			name:   "not eq",
			filter: dto.Filter{Field: "id", Value: int64(7), Operator: dto.FilterOperatorNotEq},
			where:  "id != :id",
			args:   map[string]any{"id": int64(7)},
		},
		{
			name:   "in slice",
			filter: dto.Filter{Field: "status", Value: []string{"booked", "checked_in"}, Operator: dto.FilterOperatorIn},
			where:  "status IN (:status_0, :status_1) ",
			args:   map[string]any{"status_0": "booked", "status_1": "checked_in"},
		},
		{
			name:   "is null",
			filter: dto.Filter{Field: "group_id", Operator: dto.FilterIsNull},
			where:  "group_id IS NULL",
			args:   map[string]any{},
		},
		{
			name:   "unknown operator",
			filter: dto.Filter{Field: "room", Operator: "between"},
			where:  "",
			args:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestAnd_SkipsNilAndNests(t *testing.T) {
	group := dto.And(
		dto.Filter{Field: "room", Value: "Room A", Operator: dto.FilterOperatorEq},
		nil,
		dto.Or(
			dto.Filter{Field: "status", Value: "booked", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "status", ArgName: "status_paid", Value: "paid_in_full", Operator: dto.FilterOperatorEq},
		),
	)

	where, args := group.GetWhereClause()

	assert.Len(t, group.Filters, 2)
	assert.Equal(t, "(room = :room AND (status = :status OR status = :status_paid))", where)
	assert.Equal(t, map[string]any{"room": "Room A", "status": "booked", "status_paid": "paid_in_full"}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.And()

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestDateWindow_FromRequest(t *testing.T) {
	t.Run("both bounds", func(t *testing.T) {
		var window dto.DateWindow

		err := window.FromRequest(httptest.NewRequest(http.MethodGet, "/?from=2024-04-01&to=2024-05-01", nil))

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), window.From)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), window.To)
		assert.False(t, window.Empty())
	})

	t.Run("absent", func(t *testing.T) {
		var window dto.DateWindow

		assert.NoError(t, window.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.True(t, window.Empty())
	})

	t.Run("malformed", func(t *testing.T) {
		var window dto.DateWindow

		err := window.FromRequest(httptest.NewRequest(http.MethodGet, "/?to=01-05-2024", nil))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "to must be a date formatted as YYYY-MM-DD")
	})
}
