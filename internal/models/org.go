package models

import (
	"time"

	"gorm.io/gorm"
)

// Org is the tenant boundary. The API key is an opaque shared secret that
// authenticates as the org's admin representative, so it is never serialized
// by default.
type Org struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	APIKey    string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Profiles []Profile `gorm:"foreignKey:OrgID" json:"profiles,omitempty"`
}
