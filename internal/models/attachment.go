package models

import (
	"time"

	"gorm.io/gorm"
)

// Attachment references an uploaded file by its opaque storage key; the
// actual blob store is outside this service.
type Attachment struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	FileName    string         `gorm:"type:varchar(255);not null" json:"file_name"`
	FileKey     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"file_key"`
	LeadID      uint64         `gorm:"not null;index" json:"lead_id"`
	CreatedByID uint64         `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedBy Profile `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
