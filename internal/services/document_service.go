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
	ErrDocumentNotFound    = errors.New("document not found")
	ErrInvalidDocumentData = errors.New("document title and file name are required")
	ErrTeamOutsideOrg      = errors.New("team does not belong to this organization")
)

// DocumentService provides business logic for org-scoped documents.
type DocumentService struct {
	documentRepo repository.DocumentRepository
	teamRepo     repository.TeamRepository
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documentRepo repository.DocumentRepository, teamRepo repository.TeamRepository) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		teamRepo:     teamRepo,
	}
}

// CreateDocumentInput represents parameters to create a document.
type CreateDocumentInput struct {
	Title    string
	FileName string
	TeamIDs  []uint64
}

// CreateDocument records a document in the caller's org under a fresh
// storage key, optionally shared with teams of the same org.
func (s *DocumentService) CreateDocument(rctx *auth.RequestContext, input CreateDocumentInput) (*models.Document, error) {
	title := strings.TrimSpace(input.Title)
	fileName := strings.TrimSpace(input.FileName)
	if title == "" || fileName == "" {
		return nil, ErrInvalidDocumentData
	}

	document := &models.Document{
		Title:       title,
		FileKey:     uuid.NewString(),
		FileName:    fileName,
		Status:      models.DocumentStatusActive,
		OrgID:       rctx.OrgID(),
		CreatedByID: rctx.User.ID,
	}

	if err := s.documentRepo.Create(document); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if len(input.TeamIDs) > 0 {
		if err := s.share(rctx, document, input.TeamIDs); err != nil {
			return nil, err
		}
	}

	return document, nil
}

func (s *DocumentService) share(rctx *auth.RequestContext, document *models.Document, teamIDs []uint64) error {
	teams := make([]models.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		team, err := s.teamRepo.FindByIDInOrg(id, rctx.OrgID())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamOutsideOrg
			}
			return fmt.Errorf("failed to find team: %w", err)
		}
		teams = append(teams, *team)
	}

	if err := s.documentRepo.SetTeams(document, teams); err != nil {
		return fmt.Errorf("failed to share document: %w", err)
	}
	return nil
}

// GetDocument returns a document in the caller's org.
func (s *DocumentService) GetDocument(rctx *auth.RequestContext, documentID uint64) (*models.Document, error) {
	document, err := s.documentRepo.FindByIDInOrg(documentID, rctx.OrgID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return document, nil
}

// ListDocuments lists the caller's org's documents.
func (s *DocumentService) ListDocuments(rctx *auth.RequestContext) ([]models.Document, error) {
	documents, err := s.documentRepo.ListByOrg(rctx.OrgID())
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}

// UpdateDocumentInput represents mutable document fields; nil pointers are ignored.
type UpdateDocumentInput struct {
	Title   *string
	Status  *models.DocumentStatus
	TeamIDs []uint64
}

// UpdateDocument mutates a document in the caller's org.
func (s *DocumentService) UpdateDocument(rctx *auth.RequestContext, documentID uint64, input UpdateDocumentInput) (*models.Document, error) {
	document, err := s.GetDocument(rctx, documentID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrInvalidDocumentData
		}
		document.Title = title
	}
	if input.Status != nil {
		document.Status = *input.Status
	}

	if err := s.documentRepo.Update(document); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	if input.TeamIDs != nil {
		if err := s.share(rctx, document, input.TeamIDs); err != nil {
			return nil, err
		}
	}

	return document, nil
}

// DeleteDocument removes a document in the caller's org.
func (s *DocumentService) DeleteDocument(rctx *auth.RequestContext, documentID uint64) error {
	document, err := s.GetDocument(rctx, documentID)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(document.ID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}
