package dto

import (
	"time"

	"crm-backend/internal/models"
)

// OrgDTO represents an org in API responses. The API key is only included
// when the org is first created; it is the tenant's shared secret.
type OrgDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	APIKey    string    `json:"api_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToOrgDTO converts an org model to DTO
func ToOrgDTO(org models.Org, includeAPIKey bool) OrgDTO {
	dto := OrgDTO{
		ID:        org.ID,
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
	}
	if includeAPIKey {
		dto.APIKey = org.APIKey
	}
	return dto
}

// OrgMembershipDTO represents one of the caller's org memberships
type OrgMembershipDTO struct {
	Org                 OrgDTO `json:"org"`
	Role                string `json:"role"`
	IsOrganizationAdmin bool   `json:"is_organization_admin"`
	IsActive            bool   `json:"is_active"`
}

// ToOrgMembershipDTO converts a profile with its org to a membership DTO
func ToOrgMembershipDTO(profile models.Profile) OrgMembershipDTO {
	return OrgMembershipDTO{
		Org:                 ToOrgDTO(profile.Org, false),
		Role:                profile.Role,
		IsOrganizationAdmin: profile.IsOrganizationAdmin,
		IsActive:            profile.IsActive,
	}
}
