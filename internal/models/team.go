package models

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	OrgID       uint64         `gorm:"not null;index" json:"org_id"`
	CreatedByID *uint64        `json:"created_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Org       Org       `gorm:"foreignKey:OrgID" json:"-"`
	CreatedBy *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Users     []Profile `gorm:"many2many:team_profiles" json:"users,omitempty"`
}
