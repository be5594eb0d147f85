package repository

import (
	"gorm.io/gorm"

	"crm-backend/internal/models"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

// Create creates a new profile
func (r *GormProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// FindByID finds a profile by ID
func (r *GormProfileRepository) FindByID(id uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Preload("User").Preload("Org").First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUserAndOrg finds the profile binding a user to an org
func (r *GormProfileRepository) FindByUserAndOrg(userID, orgID uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Preload("User").Preload("Org").
		Where("user_id = ? AND org_id = ?", userID, orgID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindActiveByUserAndOrg finds the active profile binding a user to an org
func (r *GormProfileRepository) FindActiveByUserAndOrg(userID, orgID uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Preload("User").Preload("Org").
		Where("user_id = ? AND org_id = ? AND is_active = ?", userID, orgID, true).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FirstActiveByUser returns the user's lowest-id active profile. Lowest id
// keeps the no-org-header fallback deterministic for users with several
// memberships.
func (r *GormProfileRepository) FirstActiveByUser(userID uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Preload("User").Preload("Org").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("profiles.id ASC").
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FirstAdminInOrg returns the org's lowest-id ADMIN-role profile
func (r *GormProfileRepository) FirstAdminInOrg(orgID uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Preload("User").Preload("Org").
		Where("org_id = ? AND role = ?", orgID, models.RoleAdmin).
		Order("profiles.id ASC").
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListByUser lists all profiles of a user with their orgs
func (r *GormProfileRepository) ListByUser(userID uint64) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Preload("Org").
		Where("user_id = ?", userID).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListByOrg lists all profiles of an org with their users
func (r *GormProfileRepository) ListByOrg(orgID uint64) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Preload("User").
		Where("org_id = ?", orgID).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListActiveByOrg lists the active profiles of an org ordered by user email
func (r *GormProfileRepository) ListActiveByOrg(orgID uint64) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Preload("User").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.org_id = ? AND profiles.is_active = ?", orgID, true).
		Order("users.email ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListAll lists every profile with its user
func (r *GormProfileRepository) ListAll() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Preload("User").Preload("Org").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// CountInOrg counts how many of the given profile IDs belong to the org
func (r *GormProfileRepository) CountInOrg(profileIDs []uint64, orgID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).
		Where("org_id = ? AND id IN ?", orgID, profileIDs).
		Count(&count).Error
	return count, err
}

// Update persists changes to a profile
func (r *GormProfileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// Delete soft deletes a profile
func (r *GormProfileRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Profile{}, id).Error
}
