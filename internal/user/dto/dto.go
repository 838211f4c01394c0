package dto

import "github.com/fekuna/omnipos-restaurant-service/internal/model"

type UserFilters struct {
	Role     *model.Role
	IsActive *bool
	Page     int
	PageSize int
}

type LoginResult struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}
