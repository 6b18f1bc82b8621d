package dto

import (
	"time"

	"hiring-board/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         user.Role  `json:"role"`
	DepartmentID *uuid.UUID `json:"departmentId"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		CreatedAt:    u.CreatedAt,
	}
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	User UserResponse `json:"user"`
	TokenResponse
}
