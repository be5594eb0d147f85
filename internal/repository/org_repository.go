package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crm-backend/internal/models"
)

// GormOrgRepository is a GORM implementation of OrgRepository
type GormOrgRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateOrg is returned when creating an org fails inside the provisioning transaction.
	ErrCreateOrg = errors.New("org repository: create org failed")
	// ErrCreateAdminProfile is returned when creating the first admin profile fails inside the provisioning transaction.
	ErrCreateAdminProfile = errors.New("org repository: create admin profile failed")
)

// NewOrgRepository creates a new OrgRepository
func NewOrgRepository(db *gorm.DB) OrgRepository {
	return &GormOrgRepository{db: db}
}

// CreateWithAdminProfile creates an org and its first admin profile
// atomically. A partially created org with no admin would be unreachable
// through the API-key path, so the pair commits or rolls back as a unit.
func (r *GormOrgRepository) CreateWithAdminProfile(org *models.Org, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOrg, err)
		}

		profile.OrgID = org.ID

		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateAdminProfile, err)
		}

		return nil
	})
}

// FindByID finds an org by ID
func (r *GormOrgRepository) FindByID(id uint64) (*models.Org, error) {
	var org models.Org
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByAPIKey finds an org by its API key
func (r *GormOrgRepository) FindByAPIKey(key string) (*models.Org, error) {
	var org models.Org
	if err := r.db.Where("api_key = ?", key).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByName finds an org by name, case-insensitively
func (r *GormOrgRepository) FindByName(name string) (*models.Org, error) {
	var org models.Org
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FirstOrCreateByName returns the org with the given name, creating it with
// the supplied API key when absent.
func (r *GormOrgRepository) FirstOrCreateByName(name, apiKey string) (*models.Org, error) {
	var org models.Org
	err := r.db.
		Where(models.Org{Name: name}).
		Attrs(models.Org{APIKey: apiKey}).
		FirstOrCreate(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}
