package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Profile binds a User to an Org. The role string and the org-admin flag are
// independent signals: API-key resolution keys off Role, the org-admin
// predicate keys off IsOrganizationAdmin.
type Profile struct {
	ID                  uint64         `gorm:"primarykey" json:"id"`
	UserID              uint64         `gorm:"not null;index:idx_profiles_user_org" json:"user_id"`
	OrgID               uint64         `gorm:"not null;index:idx_profiles_user_org" json:"org_id"`
	Role                string         `gorm:"type:varchar(50);not null;default:'USER'" json:"role"`
	IsOrganizationAdmin bool           `gorm:"not null;default:false" json:"is_organization_admin"`
	IsActive            bool           `gorm:"not null;default:true" json:"is_active"`
	Phone               string         `gorm:"type:varchar(30)" json:"phone"`
	Address             string         `gorm:"type:varchar(500)" json:"address"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Org  Org  `gorm:"foreignKey:OrgID" json:"org,omitempty"`
}
