package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Body          string         `gorm:"type:text;not null" json:"body"`
	LeadID        uint64         `gorm:"not null;index" json:"lead_id"`
	CommentedByID uint64         `gorm:"not null" json:"commented_by_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CommentedBy Profile `gorm:"foreignKey:CommentedByID" json:"commented_by,omitempty"`
}
