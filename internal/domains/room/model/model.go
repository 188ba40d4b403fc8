package model

import (
	"homestay/internal/domains/room/pricing"
	"homestay/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldCapacity    = "capacity"
	FieldWeekdayRate = "weekday_rate"
	FieldWeekendRate = "weekend_rate"
	FieldActive      = "active"
)

type Room struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Capacity    int    `db:"capacity"`
	WeekdayRate int64  `db:"weekday_rate"`
	WeekendRate int64  `db:"weekend_rate"`
	Active      bool   `db:"active"`
	model.Metadata
}

func (r Room) Rate() pricing.Rate {
	return pricing.Rate{Weekday: r.WeekdayRate, Weekend: r.WeekendRate}
}
