package dto

import (
	"time"

	"crm-backend/internal/models"
)

// ProfileDTO represents a membership in API responses
type ProfileDTO struct {
	ID                  uint64    `json:"id"`
	User                UserDTO   `json:"user"`
	OrgID               uint64    `json:"org_id"`
	Role                string    `json:"role"`
	IsOrganizationAdmin bool      `json:"is_organization_admin"`
	IsActive            bool      `json:"is_active"`
	Phone               string    `json:"phone,omitempty"`
	Address             string    `json:"address,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// ToProfileDTO converts a profile model to DTO
func ToProfileDTO(profile models.Profile) ProfileDTO {
	return ProfileDTO{
		ID:                  profile.ID,
		User:                ToUserDTO(profile.User),
		OrgID:               profile.OrgID,
		Role:                profile.Role,
		IsOrganizationAdmin: profile.IsOrganizationAdmin,
		IsActive:            profile.IsActive,
		Phone:               profile.Phone,
		Address:             profile.Address,
		CreatedAt:           profile.CreatedAt,
	}
}

// ToProfileDTOs converts a slice of profiles
func ToProfileDTOs(profiles []models.Profile) []ProfileDTO {
	dtos := make([]ProfileDTO, len(profiles))
	for i, profile := range profiles {
		dtos[i] = ToProfileDTO(profile)
	}
	return dtos
}
