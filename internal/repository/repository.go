package repository

import (
	"crm-backend/internal/models"
)

// UserRepository defines the interface for identity data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithProfile creates a user and their initial profile within a
	// single transaction.
	CreateWithProfile(user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email, case-insensitively
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete soft deletes a user and their profiles
	Delete(id uint64) error
}

// OrgRepository defines the interface for tenant data access
type OrgRepository interface {
	// CreateWithAdminProfile creates an org and its first admin profile
	// atomically.
	CreateWithAdminProfile(org *models.Org, profile *models.Profile) error

	// FindByID finds an org by ID
	FindByID(id uint64) (*models.Org, error)

	// FindByAPIKey finds an org by its API key
	FindByAPIKey(key string) (*models.Org, error)

	// FindByName finds an org by name, case-insensitively
	FindByName(name string) (*models.Org, error)

	// FirstOrCreateByName returns the org with the given name, creating it
	// with the supplied API key when absent. Idempotent.
	FirstOrCreateByName(name, apiKey string) (*models.Org, error)
}

// ProfileRepository defines the interface for membership data access
type ProfileRepository interface {
	// Create creates a new profile
	Create(profile *models.Profile) error

	// FindByID finds a profile by ID
	FindByID(id uint64) (*models.Profile, error)

	// FindByUserAndOrg finds the profile binding a user to an org
	FindByUserAndOrg(userID, orgID uint64) (*models.Profile, error)

	// FindActiveByUserAndOrg finds the active profile binding a user to an org
	FindActiveByUserAndOrg(userID, orgID uint64) (*models.Profile, error)

	// FirstActiveByUser returns the user's lowest-id active profile
	FirstActiveByUser(userID uint64) (*models.Profile, error)

	// FirstAdminInOrg returns the org's lowest-id ADMIN-role profile
	FirstAdminInOrg(orgID uint64) (*models.Profile, error)

	// ListByUser lists all profiles of a user with their orgs
	ListByUser(userID uint64) ([]models.Profile, error)

	// ListByOrg lists all profiles of an org with their users
	ListByOrg(orgID uint64) ([]models.Profile, error)

	// ListActiveByOrg lists the active profiles of an org ordered by user email
	ListActiveByOrg(orgID uint64) ([]models.Profile, error)

	// ListAll lists every profile with its user (platform admins only)
	ListAll() ([]models.Profile, error)

	// CountInOrg counts how many of the given profile IDs belong to the org
	CountInOrg(profileIDs []uint64, orgID uint64) (int64, error)

	// Update persists changes to a profile
	Update(profile *models.Profile) error

	// Delete soft deletes a profile
	Delete(id uint64) error
}

// LeadFilter holds filtering options for listing leads
type LeadFilter struct {
	OrgID         uint64
	Status        *models.LeadStatus
	ExcludeStatus []models.LeadStatus

	// RestrictTo limits results to leads created by the profile's user or
	// assigned to the profile. Nil means no restriction (admin view).
	RestrictTo *models.Profile

	Page     int
	PageSize int
}

// LeadRepository defines the interface for lead and company data access
type LeadRepository interface {
	// Create creates a new lead
	Create(lead *models.Lead) error

	// FindByIDInOrg finds a lead in the given org with its relations
	FindByIDInOrg(id, orgID uint64) (*models.Lead, error)

	// List retrieves leads with filtering and pagination
	List(filter LeadFilter) ([]models.Lead, int64, error)

	// Update updates a lead
	Update(lead *models.Lead) error

	// Delete soft deletes a lead with its comments and attachments
	Delete(id uint64) error

	// SetAssignees replaces the lead's assigned profiles
	SetAssignees(lead *models.Lead, profiles []models.Profile) error

	// AddComment attaches a comment to a lead
	AddComment(comment *models.Comment) error

	// AddAttachment attaches an attachment record to a lead
	AddAttachment(attachment *models.Attachment) error

	// CreateCompany creates a new company
	CreateCompany(company *models.Company) error

	// FindCompanyInOrg finds a company in the given org
	FindCompanyInOrg(id, orgID uint64) (*models.Company, error)

	// FindCompanyByName finds a company by name in the org, case-insensitively
	FindCompanyByName(name string, orgID uint64) (*models.Company, error)

	// ListCompanies lists the org's companies
	ListCompanies(orgID uint64) ([]models.Company, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a new team
	Create(team *models.Team) error

	// FindByIDInOrg finds a team in the given org with its users
	FindByIDInOrg(id, orgID uint64) (*models.Team, error)

	// FindByNameInOrg finds a team by name in the org, case-insensitively
	FindByNameInOrg(name string, orgID uint64) (*models.Team, error)

	// ListByOrg lists the org's teams
	ListByOrg(orgID uint64) ([]models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// Delete soft deletes a team
	Delete(id uint64) error

	// SetUsers replaces the team's roster
	SetUsers(team *models.Team, profiles []models.Profile) error
}

// DocumentRepository defines the interface for document data access
type DocumentRepository interface {
	// Create creates a new document
	Create(document *models.Document) error

	// FindByIDInOrg finds a document in the given org with its teams
	FindByIDInOrg(id, orgID uint64) (*models.Document, error)

	// ListByOrg lists the org's documents
	ListByOrg(orgID uint64) ([]models.Document, error)

	// Update updates a document
	Update(document *models.Document) error

	// Delete soft deletes a document
	Delete(id uint64) error

	// SetTeams replaces the teams a document is shared with
	SetTeams(document *models.Document, teams []models.Team) error
}
