package dto

import (
	"time"

	"homestay/internal/domains/user/model"
	"homestay/shared"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
)

// UpdateUserRequest is used by admins to manage a staff account. Emails are immutable.
type UpdateUserRequest struct {
	FullName *string `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Role     *string `db:"role"      json:"role"      validate:"omitempty,oneof=admin staff"`
	Active   *bool   `db:"active"    json:"active"`
}

func (u UpdateUserRequest) Empty() bool {
	return u.FullName == nil && u.Role == nil && u.Active == nil
}

// Demotes reports whether applying the request would take admin rights away or lock the account.
func (u UpdateUserRequest) Demotes() bool {
	return (u.Role != nil && *u.Role != constant.RoleAdmin) || (u.Active != nil && !*u.Active)
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.Role = user.Role
	r.Active = user.Active
	r.LastLogin = user.LastLogin
	r.Metadata.FromModel(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
