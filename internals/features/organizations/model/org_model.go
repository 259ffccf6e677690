package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrgModel struct {
	OrgID   uuid.UUID `gorm:"column:org_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"org_id"`
	OrgName string    `gorm:"column:org_name;type:varchar(100);not null" json:"org_name"`
	OrgSlug string    `gorm:"column:org_slug;type:varchar(60);not null;uniqueIndex" json:"org_slug"`

	OrgCreatedAt time.Time      `gorm:"column:org_created_at;autoCreateTime" json:"org_created_at"`
	OrgUpdatedAt time.Time      `gorm:"column:org_updated_at;autoUpdateTime" json:"org_updated_at"`
	OrgDeletedAt gorm.DeletedAt `gorm:"column:org_deleted_at;index" json:"org_deleted_at,omitempty"`
}

func (OrgModel) TableName() string { return "orgs" }
