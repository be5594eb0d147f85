package dto

import (
	"time"

	"crm-backend/internal/models"
)

// DocumentDTO represents a document in API responses
type DocumentDTO struct {
	ID        uint64                `json:"id"`
	Title     string                `json:"title"`
	FileKey   string                `json:"file_key"`
	FileName  string                `json:"file_name"`
	Status    models.DocumentStatus `json:"status"`
	CreatedBy UserDTO               `json:"created_by"`
	Teams     []TeamDTO             `json:"teams,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// ToDocumentDTO converts a document model to DTO
func ToDocumentDTO(document models.Document) DocumentDTO {
	dto := DocumentDTO{
		ID:        document.ID,
		Title:     document.Title,
		FileKey:   document.FileKey,
		FileName:  document.FileName,
		Status:    document.Status,
		CreatedBy: ToUserDTO(document.CreatedBy),
		CreatedAt: document.CreatedAt,
	}

	if len(document.Teams) > 0 {
		dto.Teams = ToTeamDTOs(document.Teams)
	}

	return dto
}

// ToDocumentDTOs converts a slice of documents
func ToDocumentDTOs(documents []models.Document) []DocumentDTO {
	dtos := make([]DocumentDTO, len(documents))
	for i, document := range documents {
		dtos[i] = ToDocumentDTO(document)
	}
	return dtos
}
