package repository

import (
	"gorm.io/gorm"

	"crm-backend/internal/database"
	"crm-backend/internal/models"
	"crm-backend/internal/utils"
)

// GormLeadRepository is a GORM implementation of LeadRepository
type GormLeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &GormLeadRepository{db: db}
}

// Create creates a new lead
func (r *GormLeadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

// FindByIDInOrg finds a lead in the given org with its relations
func (r *GormLeadRepository) FindByIDInOrg(id, orgID uint64) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.
		Preload("Company").
		Preload("CreatedBy").
		Preload("AssignedTo.User").
		Preload("Comments.CommentedBy.User").
		Preload("Attachments").
		Where("org_id = ?", orgID).
		First(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// List retrieves leads with filtering and pagination
func (r *GormLeadRepository) List(filter LeadFilter) ([]models.Lead, int64, error) {
	var leads []models.Lead

	query := r.db.Model(&models.Lead{}).Where("leads.org_id = ?", filter.OrgID)

	if filter.Status != nil {
		query = query.Where("leads.status = ?", *filter.Status)
	}
	for _, status := range filter.ExcludeStatus {
		query = query.Where("leads.status <> ?", status)
	}

	if filter.RestrictTo != nil {
		assignedSubQuery := r.db.Model(&models.Profile{}).
			Select("1").
			Joins("JOIN lead_assigned_profiles ON lead_assigned_profiles.profile_id = profiles.id").
			Where("lead_assigned_profiles.lead_id = leads.id").
			Where("profiles.id = ?", filter.RestrictTo.ID)
		query = query.Where("leads.created_by_id = ? OR EXISTS (?)", filter.RestrictTo.UserID, assignedSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("leads.id DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Offset: (filter.Page - 1) * filter.PageSize,
			Limit:  filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Company").Preload("CreatedBy").Find(&leads).Error; err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// Update updates a lead
func (r *GormLeadRepository) Update(lead *models.Lead) error {
	return r.db.Save(lead).Error
}

// Delete soft deletes a lead with its comments and attachments
func (r *GormLeadRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lead_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("lead_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Lead{}, id).Error
	})
}

// SetAssignees replaces the lead's assigned profiles
func (r *GormLeadRepository) SetAssignees(lead *models.Lead, profiles []models.Profile) error {
	return r.db.Model(lead).Association("AssignedTo").Replace(profiles)
}

// AddComment attaches a comment to a lead
func (r *GormLeadRepository) AddComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// AddAttachment attaches an attachment record to a lead
func (r *GormLeadRepository) AddAttachment(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// CreateCompany creates a new company
func (r *GormLeadRepository) CreateCompany(company *models.Company) error {
	return r.db.Create(company).Error
}

// FindCompanyInOrg finds a company in the given org
func (r *GormLeadRepository) FindCompanyInOrg(id, orgID uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("org_id = ?", orgID).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindCompanyByName finds a company by name in the org, case-insensitively
func (r *GormLeadRepository) FindCompanyByName(name string, orgID uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.
		Where("org_id = ? AND LOWER(name) = LOWER(?)", orgID, name).
		First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// ListCompanies lists the org's companies
func (r *GormLeadRepository) ListCompanies(orgID uint64) ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.Scopes(database.OrgScoped(orgID)).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
