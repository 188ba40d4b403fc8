package dto

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"homestay/shared/constant"
	"homestay/shared/failure"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// It's recommended to call this method with `defaultRequest` set to true if data is large
// Example:
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, true)
//
// This will set default values for Page and Limit if they are not provided in the request.
// If `defaultRequest` is false, it will only populate the fields that are present in the request.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := queryParams.Get(constant.RequestParamSortDir); strings.ToUpper(sortDir) == SortDirAsc || strings.ToUpper(sortDir) == SortDirDesc {
		q.SortDir = strings.ToUpper(sortDir)
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Restrict drops SortBy unless it names one of the allowed columns, falling back to fallback.
func (q *QueryParams) Restrict(fallback string, allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = fallback
	}

	if q.SortBy != "" && q.SortDir == "" {
		q.SortDir = SortDirAsc
	}
}

// DateWindow is an optional [From, To) range of days read from the from and to query parameters.
type DateWindow struct {
	From time.Time
	To   time.Time
}

// Empty reports whether neither bound was given.
func (d DateWindow) Empty() bool {
	return d.From.IsZero() && d.To.IsZero()
}

// FromRequest parses the from and to query parameters. Absent bounds stay zero.
func (d *DateWindow) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	for name, target := range map[string]*time.Time{constant.RequestParamFrom: &d.From, constant.RequestParamTo: &d.To} {
		value := query.Get(name)
		if value == constant.Empty {
			continue
		}

		day, err := time.Parse(constant.DayFormat, value)
		if err != nil {
			return failure.BadRequestFromString(name + " must be a date formatted as YYYY-MM-DD") //nolint:wrapcheck
		}

		*target = day
	}

	return nil
}
