package models

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Website   string         `gorm:"type:varchar(255)" json:"website"`
	OrgID     uint64         `gorm:"not null;index" json:"org_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
