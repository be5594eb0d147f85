package models

import (
	"time"

	"gorm.io/gorm"
)

type DocumentStatus string

const (
	DocumentStatusActive   DocumentStatus = "active"
	DocumentStatusInactive DocumentStatus = "inactive"
)

type Document struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	FileKey     string         `gorm:"type:varchar(100);not null" json:"file_key"`
	FileName    string         `gorm:"type:varchar(255);not null" json:"file_name"`
	Status      DocumentStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	OrgID       uint64         `gorm:"not null;index" json:"org_id"`
	CreatedByID uint64         `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedBy User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Teams     []Team `gorm:"many2many:document_teams" json:"teams,omitempty"`
}
