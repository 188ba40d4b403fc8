package dto

import (
	"homestay/internal/domains/room/model"
	"homestay/shared"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
	"homestay/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name        string `json:"name"         validate:"required,max=50"`
	Capacity    int    `json:"capacity"     validate:"omitempty,min=0"`
	WeekdayRate int64  `json:"weekday_rate" validate:"gte=0"`
	WeekendRate int64  `json:"weekend_rate" validate:"gte=0"`
	Active      *bool  `json:"active"       validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	weekend := c.WeekendRate
	if weekend == 0 {
		weekend = c.WeekdayRate
	}

	return model.Room{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Capacity:    c.Capacity,
		WeekdayRate: c.WeekdayRate,
		WeekendRate: weekend,
		Active:      active,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateRoomRequest cannot rename a room; bookings refer to rooms by name.
type UpdateRoomRequest struct {
	Capacity    *int   `db:"capacity"     json:"capacity"     validate:"omitempty,min=0"`
	WeekdayRate *int64 `db:"weekday_rate" json:"weekday_rate" validate:"omitempty,gte=0"`
	WeekendRate *int64 `db:"weekend_rate" json:"weekend_rate" validate:"omitempty,gte=0"`
	Active      *bool  `db:"active"       json:"active"       validate:"omitempty"`
}

func (u UpdateRoomRequest) Empty() bool {
	return u.Capacity == nil && u.WeekdayRate == nil && u.WeekendRate == nil && u.Active == nil
}

type RoomResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	WeekdayRate int64  `json:"weekday_rate"`
	WeekendRate int64  `json:"weekend_rate"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.WeekdayRate = model.WeekdayRate
	r.WeekendRate = model.WeekendRate
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
