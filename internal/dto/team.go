package dto

import (
	"time"

	"crm-backend/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID          uint64       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Users       []ProfileDTO `json:"users,omitempty"`
	CreatedBy   *UserDTO     `json:"created_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ToTeamDTO converts a team model to DTO
func ToTeamDTO(team models.Team) TeamDTO {
	dto := TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatedAt:   team.CreatedAt,
	}

	if len(team.Users) > 0 {
		dto.Users = ToProfileDTOs(team.Users)
	}

	if team.CreatedBy != nil {
		createdBy := ToUserDTO(*team.CreatedBy)
		dto.CreatedBy = &createdBy
	}

	return dto
}

// ToTeamDTOs converts a slice of teams
func ToTeamDTOs(teams []models.Team) []TeamDTO {
	dtos := make([]TeamDTO, len(teams))
	for i, team := range teams {
		dtos[i] = ToTeamDTO(team)
	}
	return dtos
}
