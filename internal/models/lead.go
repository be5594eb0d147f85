package models

import (
	"time"

	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadStatusOpen      LeadStatus = "open"
	LeadStatusClosed    LeadStatus = "closed"
	LeadStatusConverted LeadStatus = "converted"
)

type Lead struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      LeadStatus     `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Source      string         `gorm:"type:varchar(100)" json:"source"`
	Website     string         `gorm:"type:varchar(255)" json:"website"`
	CompanyID   *uint64        `json:"company_id"`
	OrgID       uint64         `gorm:"not null;index" json:"org_id"`
	CreatedByID uint64         `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company     *Company     `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Org         Org          `gorm:"foreignKey:OrgID" json:"-"`
	CreatedBy   User         `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedTo  []Profile    `gorm:"many2many:lead_assigned_profiles" json:"assigned_to,omitempty"`
	Comments    []Comment    `gorm:"foreignKey:LeadID" json:"comments,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:LeadID" json:"attachments,omitempty"`
}
