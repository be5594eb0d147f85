package repository

import (
	"gorm.io/gorm"

	"crm-backend/internal/database"
	"crm-backend/internal/models"
)

// GormDocumentRepository is a GORM implementation of DocumentRepository
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create creates a new document
func (r *GormDocumentRepository) Create(document *models.Document) error {
	return r.db.Create(document).Error
}

// FindByIDInOrg finds a document in the given org with its teams
func (r *GormDocumentRepository) FindByIDInOrg(id, orgID uint64) (*models.Document, error) {
	var document models.Document
	if err := r.db.
		Preload("CreatedBy").
		Preload("Teams").
		Where("org_id = ?", orgID).
		First(&document, id).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// ListByOrg lists the org's documents, newest first
func (r *GormDocumentRepository) ListByOrg(orgID uint64) ([]models.Document, error) {
	var documents []models.Document
	if err := r.db.
		Preload("CreatedBy").
		Scopes(database.OrgScoped(orgID)).
		Order("id DESC").
		Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

// Update updates a document
func (r *GormDocumentRepository) Update(document *models.Document) error {
	return r.db.Save(document).Error
}

// Delete soft deletes a document
func (r *GormDocumentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Document{}, id).Error
}

// SetTeams replaces the teams a document is shared with
func (r *GormDocumentRepository) SetTeams(document *models.Document, teams []models.Team) error {
	return r.db.Model(document).Association("Teams").Replace(teams)
}
