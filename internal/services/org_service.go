package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"crm-backend/internal/models"
	"crm-backend/internal/repository"
	"crm-backend/internal/utils"
)

var (
	ErrInvalidOrgName         = errors.New("org name cannot be empty")
	ErrOrgNameTaken           = errors.New("org already exists with this name")
	ErrAPIKeyGenerationFailed = errors.New("failed to generate api key")
)

// OrgService provides business logic for tenant provisioning.
type OrgService struct {
	orgRepo     repository.OrgRepository
	profileRepo repository.ProfileRepository
}

// NewOrgService creates a new OrgService.
func NewOrgService(orgRepo repository.OrgRepository, profileRepo repository.ProfileRepository) *OrgService {
	return &OrgService{
		orgRepo:     orgRepo,
		profileRepo: profileRepo,
	}
}

// CreateOrgInput represents parameters to create a new org.
type CreateOrgInput struct {
	Name      string
	CreatorID uint64
}

// CreateOrg provisions a tenant: fresh API key, unique name, and exactly one
// ADMIN profile for the creator, committed as a unit. This is the only path
// that produces the first admin of a tenant.
func (s *OrgService) CreateOrg(input CreateOrgInput) (*models.Org, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidOrgName
	}

	if _, err := s.orgRepo.FindByName(name); err == nil {
		return nil, ErrOrgNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check org name: %w", err)
	}

	apiKey, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, ErrAPIKeyGenerationFailed
	}

	org := &models.Org{
		Name:   name,
		APIKey: apiKey,
	}

	profile := &models.Profile{
		UserID:              input.CreatorID,
		Role:                models.RoleAdmin,
		IsOrganizationAdmin: true,
		IsActive:            true,
	}

	if err := s.orgRepo.CreateWithAdminProfile(org, profile); err != nil {
		return nil, fmt.Errorf("failed to create org: %w", err)
	}

	return org, nil
}

// ListOrgsForUser returns the caller's memberships with their orgs.
func (s *OrgService) ListOrgsForUser(userID uint64) ([]models.Profile, error) {
	profiles, err := s.profileRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orgs: %w", err)
	}
	return profiles, nil
}
