package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crm-backend/internal/auth"
	"crm-backend/internal/models"
	"crm-backend/internal/repository"
)

var (
	ErrLeadNotFound         = errors.New("lead not found")
	ErrInvalidLeadTitle     = errors.New("lead title cannot be empty")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyNameTaken     = errors.New("company already exists with this name")
	ErrInvalidCompanyName   = errors.New("company name cannot be empty")
	ErrAssigneeOutsideOrg   = errors.New("assignee does not belong to this organization")
	ErrLeadEditNotPermitted = errors.New("only admins or the creator can modify this lead")
	ErrEmptyComment         = errors.New("comment cannot be empty")
)

// LeadService provides business logic for leads and companies, scoped to the
// caller's resolved org.
type LeadService struct {
	leadRepo    repository.LeadRepository
	profileRepo repository.ProfileRepository
}

// NewLeadService creates a new LeadService.
func NewLeadService(leadRepo repository.LeadRepository, profileRepo repository.ProfileRepository) *LeadService {
	return &LeadService{
		leadRepo:    leadRepo,
		profileRepo: profileRepo,
	}
}

// canSeeAllLeads mirrors the listing restriction: ADMIN-role profiles and
// superusers see every lead in the org; others only what they created or
// are assigned. Note this keys off the role string, not the org-admin flag.
func canSeeAllLeads(rctx *auth.RequestContext) bool {
	if rctx == nil || rctx.User == nil || rctx.Profile == nil {
		return false
	}
	return rctx.Profile.Role == models.RoleAdmin || rctx.User.IsSuperuser
}

// LeadListResult splits the org's leads the way the list endpoint serves
// them: open (anything not closed or converted) and closed.
type LeadListResult struct {
	Open        []models.Lead
	OpenTotal   int64
	Closed      []models.Lead
	ClosedTotal int64
}

// ListLeads returns the caller's visible leads, split open/closed.
func (s *LeadService) ListLeads(rctx *auth.RequestContext, page, pageSize int) (*LeadListResult, error) {
	var restrict *models.Profile
	if !canSeeAllLeads(rctx) {
		restrict = rctx.Profile
	}

	open, openTotal, err := s.leadRepo.List(repository.LeadFilter{
		OrgID:         rctx.OrgID(),
		ExcludeStatus: []models.LeadStatus{models.LeadStatusClosed, models.LeadStatusConverted},
		RestrictTo:    restrict,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list open leads: %w", err)
	}

	closedStatus := models.LeadStatusClosed
	closed, closedTotal, err := s.leadRepo.List(repository.LeadFilter{
		OrgID:      rctx.OrgID(),
		Status:     &closedStatus,
		RestrictTo: restrict,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list closed leads: %w", err)
	}

	return &LeadListResult{
		Open:        open,
		OpenTotal:   openTotal,
		Closed:      closed,
		ClosedTotal: closedTotal,
	}, nil
}

// CreateLeadInput represents parameters to create a lead.
type CreateLeadInput struct {
	Title              string
	Description        string
	Source             string
	Website            string
	CompanyID          *uint64
	AssignedProfileIDs []uint64
}

// CreateLead creates a lead in the caller's org. The company and every
// assignee must belong to the same org.
func (s *LeadService) CreateLead(rctx *auth.RequestContext, input CreateLeadInput) (*models.Lead, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidLeadTitle
	}

	if input.CompanyID != nil {
		if _, err := s.leadRepo.FindCompanyInOrg(*input.CompanyID, rctx.OrgID()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			return nil, fmt.Errorf("failed to find company: %w", err)
		}
	}

	if len(input.AssignedProfileIDs) > 0 {
		if err := s.verifyAssignees(input.AssignedProfileIDs, rctx.OrgID()); err != nil {
			return nil, err
		}
	}

	lead := &models.Lead{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      models.LeadStatusOpen,
		Source:      input.Source,
		Website:     input.Website,
		CompanyID:   input.CompanyID,
		OrgID:       rctx.OrgID(),
		CreatedByID: rctx.User.ID,
	}

	if err := s.leadRepo.Create(lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	if len(input.AssignedProfileIDs) > 0 {
		if err := s.setAssignees(lead, input.AssignedProfileIDs); err != nil {
			return nil, err
		}
	}

	return lead, nil
}

// verifyAssignees checks every profile id belongs to the org. Runs before
// any write so a bad assignee list never leaves a half-applied change.
func (s *LeadService) verifyAssignees(profileIDs []uint64, orgID uint64) error {
	count, err := s.profileRepo.CountInOrg(profileIDs, orgID)
	if err != nil {
		return fmt.Errorf("failed to verify assignees: %w", err)
	}
	if count != int64(len(profileIDs)) {
		return ErrAssigneeOutsideOrg
	}
	return nil
}

func (s *LeadService) setAssignees(lead *models.Lead, profileIDs []uint64) error {
	profiles := make([]models.Profile, len(profileIDs))
	for i, id := range profileIDs {
		profiles[i] = models.Profile{ID: id}
	}

	if err := s.leadRepo.SetAssignees(lead, profiles); err != nil {
		return fmt.Errorf("failed to assign lead: %w", err)
	}
	return nil
}

// GetLead returns a lead in the caller's org with its relations.
func (s *LeadService) GetLead(rctx *auth.RequestContext, leadID uint64) (*models.Lead, error) {
	lead, err := s.leadRepo.FindByIDInOrg(leadID, rctx.OrgID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}
	return lead, nil
}

// UpdateLeadInput represents mutable lead fields; nil pointers are ignored.
type UpdateLeadInput struct {
	Title              *string
	Description        *string
	Status             *models.LeadStatus
	Source             *string
	Website            *string
	AssignedProfileIDs []uint64
}

// UpdateLead mutates a lead in the caller's org. Only admins or the creator
// may modify it.
func (s *LeadService) UpdateLead(rctx *auth.RequestContext, leadID uint64, input UpdateLeadInput) (*models.Lead, error) {
	lead, err := s.GetLead(rctx, leadID)
	if err != nil {
		return nil, err
	}

	if !canSeeAllLeads(rctx) && lead.CreatedByID != rctx.User.ID {
		return nil, ErrLeadEditNotPermitted
	}

	if input.AssignedProfileIDs != nil {
		if err := s.verifyAssignees(input.AssignedProfileIDs, rctx.OrgID()); err != nil {
			return nil, err
		}
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidLeadTitle
		}
		lead.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		lead.Description = *input.Description
	}
	if input.Status != nil {
		lead.Status = *input.Status
	}
	if input.Source != nil {
		lead.Source = *input.Source
	}
	if input.Website != nil {
		lead.Website = *input.Website
	}

	if err := s.leadRepo.Update(lead); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	if input.AssignedProfileIDs != nil {
		if err := s.setAssignees(lead, input.AssignedProfileIDs); err != nil {
			return nil, err
		}
	}

	return lead, nil
}

// DeleteLead removes a lead in the caller's org. Only admins or the creator
// may delete it.
func (s *LeadService) DeleteLead(rctx *auth.RequestContext, leadID uint64) error {
	lead, err := s.GetLead(rctx, leadID)
	if err != nil {
		return err
	}

	if !canSeeAllLeads(rctx) && lead.CreatedByID != rctx.User.ID {
		return ErrLeadEditNotPermitted
	}

	if err := s.leadRepo.Delete(lead.ID); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	return nil
}

// AddComment attaches a comment by the caller's profile to a lead.
func (s *LeadService) AddComment(rctx *auth.RequestContext, leadID uint64, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyComment
	}

	lead, err := s.GetLead(rctx, leadID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:          strings.TrimSpace(body),
		LeadID:        lead.ID,
		CommentedByID: rctx.Profile.ID,
	}

	if err := s.leadRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}

// AddAttachment records an attachment for a lead under a fresh storage key.
func (s *LeadService) AddAttachment(rctx *auth.RequestContext, leadID uint64, fileName string) (*models.Attachment, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, fmt.Errorf("file name is required")
	}

	lead, err := s.GetLead(rctx, leadID)
	if err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		FileName:    strings.TrimSpace(fileName),
		FileKey:     uuid.NewString(),
		LeadID:      lead.ID,
		CreatedByID: rctx.Profile.ID,
	}

	if err := s.leadRepo.AddAttachment(attachment); err != nil {
		return nil, fmt.Errorf("failed to add attachment: %w", err)
	}

	return attachment, nil
}

// CreateCompanyInput represents parameters to create a company.
type CreateCompanyInput struct {
	Name    string
	Website string
}

// CreateCompany creates a company in the caller's org with a unique name.
func (s *LeadService) CreateCompany(rctx *auth.RequestContext, input CreateCompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidCompanyName
	}

	if _, err := s.leadRepo.FindCompanyByName(name, rctx.OrgID()); err == nil {
		return nil, ErrCompanyNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check company name: %w", err)
	}

	company := &models.Company{
		Name:    name,
		Website: input.Website,
		OrgID:   rctx.OrgID(),
	}

	if err := s.leadRepo.CreateCompany(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return company, nil
}

// ListCompanies lists the caller's org's companies.
func (s *LeadService) ListCompanies(rctx *auth.RequestContext) ([]models.Company, error) {
	companies, err := s.leadRepo.ListCompanies(rctx.OrgID())
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}
