package repository

import (
	"gorm.io/gorm"

	"crm-backend/internal/database"
	"crm-backend/internal/models"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a new team
func (r *GormTeamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// FindByIDInOrg finds a team in the given org with its users
func (r *GormTeamRepository) FindByIDInOrg(id, orgID uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.
		Preload("Users.User").
		Preload("CreatedBy").
		Where("org_id = ?", orgID).
		First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByNameInOrg finds a team by name in the org, case-insensitively
func (r *GormTeamRepository) FindByNameInOrg(name string, orgID uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.
		Where("org_id = ? AND LOWER(name) = LOWER(?)", orgID, name).
		First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// ListByOrg lists the org's teams, newest first
func (r *GormTeamRepository) ListByOrg(orgID uint64) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.
		Preload("Users.User").
		Scopes(database.OrgScoped(orgID)).
		Order("id DESC").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete soft deletes a team
func (r *GormTeamRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Team{}, id).Error
}

// SetUsers replaces the team's roster
func (r *GormTeamRepository) SetUsers(team *models.Team, profiles []models.Profile) error {
	return r.db.Model(team).Association("Users").Replace(profiles)
}
