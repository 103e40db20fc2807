package dto

import (
	"titlerate/backend/internal/entity"
	profileDto "titlerate/backend/internal/modules/profile/dto"
	commonDto "titlerate/backend/pkg/dto"
)

type CreateUserInput struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Role      string `json:"role" binding:"omitempty,oneof=user moderator admin"`
	FirstName string `json:"first_name" binding:"omitempty,max=150"`
	LastName  string `json:"last_name" binding:"omitempty,max=150"`
	Bio       string `json:"bio"`
}

type UpdateUserInput struct {
	Username  *string `json:"username" binding:"omitempty,max=150"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	Role      *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}

type ListUsersResponse struct {
	Data []*profileDto.UserResponse `json:"data"`
	Meta commonDto.PaginationMeta   `json:"meta"`
}

func NewListUsersResponse(users []*entity.User, meta commonDto.PaginationMeta) *ListUsersResponse {
	resp := &ListUsersResponse{Meta: meta}
	for _, user := range users {
		resp.Data = append(resp.Data, profileDto.NewUserResponse(user))
	}
	return resp
}
