package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"crm-backend/internal/auth"
	"crm-backend/internal/models"
	"crm-backend/internal/repository"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrInvalidTeamName  = errors.New("team name cannot be empty")
	ErrTeamNameTaken    = errors.New("team already exists with this name")
	ErrMemberOutsideOrg = errors.New("member does not belong to this organization")
)

// TeamService provides business logic for org-scoped team rosters.
type TeamService struct {
	teamRepo    repository.TeamRepository
	profileRepo repository.ProfileRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, profileRepo repository.ProfileRepository) *TeamService {
	return &TeamService{
		teamRepo:    teamRepo,
		profileRepo: profileRepo,
	}
}

// CreateTeamInput represents parameters to create a team.
type CreateTeamInput struct {
	Name        string
	Description string
	ProfileIDs  []uint64
}

// CreateTeam creates a team in the caller's org with a unique name.
func (s *TeamService) CreateTeam(rctx *auth.RequestContext, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidTeamName
	}

	if _, err := s.teamRepo.FindByNameInOrg(name, rctx.OrgID()); err == nil {
		return nil, ErrTeamNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check team name: %w", err)
	}

	creatorID := rctx.User.ID
	team := &models.Team{
		Name:        name,
		Description: input.Description,
		OrgID:       rctx.OrgID(),
		CreatedByID: &creatorID,
	}

	if err := s.teamRepo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if len(input.ProfileIDs) > 0 {
		if err := s.setUsers(team, input.ProfileIDs, rctx.OrgID()); err != nil {
			return nil, err
		}
	}

	return team, nil
}

func (s *TeamService) setUsers(team *models.Team, profileIDs []uint64, orgID uint64) error {
	count, err := s.profileRepo.CountInOrg(profileIDs, orgID)
	if err != nil {
		return fmt.Errorf("failed to verify members: %w", err)
	}
	if count != int64(len(profileIDs)) {
		return ErrMemberOutsideOrg
	}

	profiles := make([]models.Profile, len(profileIDs))
	for i, id := range profileIDs {
		profiles[i] = models.Profile{ID: id}
	}

	if err := s.teamRepo.SetUsers(team, profiles); err != nil {
		return fmt.Errorf("failed to set team members: %w", err)
	}
	return nil
}

// GetTeam returns a team in the caller's org.
func (s *TeamService) GetTeam(rctx *auth.RequestContext, teamID uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByIDInOrg(teamID, rctx.OrgID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

// ListTeams lists the caller's org's teams.
func (s *TeamService) ListTeams(rctx *auth.RequestContext) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByOrg(rctx.OrgID())
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// UpdateTeamInput represents mutable team fields; nil pointers are ignored.
type UpdateTeamInput struct {
	Name        *string
	Description *string
	ProfileIDs  []uint64
}

// UpdateTeam mutates a team in the caller's org.
func (s *TeamService) UpdateTeam(rctx *auth.RequestContext, teamID uint64, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.GetTeam(rctx, teamID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidTeamName
		}
		if existing, err := s.teamRepo.FindByNameInOrg(name, rctx.OrgID()); err == nil && existing.ID != team.ID {
			return nil, ErrTeamNameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check team name: %w", err)
		}
		team.Name = name
	}
	if input.Description != nil {
		team.Description = *input.Description
	}

	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	if input.ProfileIDs != nil {
		if err := s.setUsers(team, input.ProfileIDs, rctx.OrgID()); err != nil {
			return nil, err
		}
	}

	return team, nil
}

// DeleteTeam removes a team in the caller's org.
func (s *TeamService) DeleteTeam(rctx *auth.RequestContext, teamID uint64) error {
	team, err := s.GetTeam(rctx, teamID)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(team.ID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// TeamsAndUsers bundles the org's teams with its active profiles, for the
// roster endpoint.
type TeamsAndUsers struct {
	Teams    []models.Team
	Profiles []models.Profile
}

// GetTeamsAndUsers returns all teams and active profiles of the caller's org.
func (s *TeamService) GetTeamsAndUsers(rctx *auth.RequestContext) (*TeamsAndUsers, error) {
	teams, err := s.teamRepo.ListByOrg(rctx.OrgID())
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	profiles, err := s.profileRepo.ListActiveByOrg(rctx.OrgID())
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return &TeamsAndUsers{
		Teams:    teams,
		Profiles: profiles,
	}, nil
}
