package dto

import (
	"time"

	"crm-backend/internal/models"
)

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

// ToCompanyDTO converts a company model to DTO
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:      company.ID,
		Name:    company.Name,
		Website: company.Website,
	}
}

// CommentDTO represents a lead comment in API responses
type CommentDTO struct {
	ID          uint64     `json:"id"`
	Body        string     `json:"body"`
	CommentedBy ProfileDTO `json:"commented_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AttachmentDTO represents a lead attachment in API responses
type AttachmentDTO struct {
	ID        uint64    `json:"id"`
	FileName  string    `json:"file_name"`
	FileKey   string    `json:"file_key"`
	CreatedAt time.Time `json:"created_at"`
}

// LeadDTO represents a lead in API responses
type LeadDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Status      models.LeadStatus `json:"status"`
	Source      string            `json:"source,omitempty"`
	Website     string            `json:"website,omitempty"`
	Company     *CompanyDTO       `json:"company,omitempty"`
	CreatedBy   UserDTO           `json:"created_by"`
	AssignedTo  []ProfileDTO      `json:"assigned_to,omitempty"`
	Comments    []CommentDTO      `json:"comments,omitempty"`
	Attachments []AttachmentDTO   `json:"attachments,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ToLeadDTO converts a lead model to DTO
func ToLeadDTO(lead models.Lead) LeadDTO {
	dto := LeadDTO{
		ID:          lead.ID,
		Title:       lead.Title,
		Description: lead.Description,
		Status:      lead.Status,
		Source:      lead.Source,
		Website:     lead.Website,
		CreatedBy:   ToUserDTO(lead.CreatedBy),
		CreatedAt:   lead.CreatedAt,
	}

	if lead.Company != nil {
		company := ToCompanyDTO(*lead.Company)
		dto.Company = &company
	}

	if len(lead.AssignedTo) > 0 {
		dto.AssignedTo = ToProfileDTOs(lead.AssignedTo)
	}

	for _, comment := range lead.Comments {
		dto.Comments = append(dto.Comments, CommentDTO{
			ID:          comment.ID,
			Body:        comment.Body,
			CommentedBy: ToProfileDTO(comment.CommentedBy),
			CreatedAt:   comment.CreatedAt,
		})
	}

	for _, attachment := range lead.Attachments {
		dto.Attachments = append(dto.Attachments, AttachmentDTO{
			ID:        attachment.ID,
			FileName:  attachment.FileName,
			FileKey:   attachment.FileKey,
			CreatedAt: attachment.CreatedAt,
		})
	}

	return dto
}

// ToLeadDTOs converts a slice of leads
func ToLeadDTOs(leads []models.Lead) []LeadDTO {
	dtos := make([]LeadDTO, len(leads))
	for i, lead := range leads {
		dtos[i] = ToLeadDTO(lead)
	}
	return dtos
}
