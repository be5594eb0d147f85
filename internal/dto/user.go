package dto

import (
	"time"

	"crm-backend/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64    `json:"id"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	ProfilePic  string    `json:"profile_pic,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUserDTO converts a user model to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		ProfilePic:  user.ProfilePic,
		CreatedAt:   user.CreatedAt,
	}
}

// LoginResponseDTO carries the issued token alongside the user
type LoginResponseDTO struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
}
