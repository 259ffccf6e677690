package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceModel struct {
	ServiceID    uuid.UUID `gorm:"column:service_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"service_id"`
	ServiceOrgID uuid.UUID `gorm:"column:service_org_id;type:uuid;not null;index" json:"service_org_id"`

	ServiceName string `gorm:"column:service_name;type:varchar(120);not null" json:"service_name"`

	// When set, students carrying this tag resolve to this service
	// during auto-selection.
	ServiceLinkedStudentTag *string `gorm:"column:service_linked_student_tag;type:varchar(60)" json:"service_linked_student_tag,omitempty"`

	ServiceIsActive bool `gorm:"column:service_is_active;not null;default:true" json:"service_is_active"`

	ServiceCreatedAt time.Time      `gorm:"column:service_created_at;autoCreateTime" json:"service_created_at"`
	ServiceUpdatedAt time.Time      `gorm:"column:service_updated_at;autoUpdateTime" json:"service_updated_at"`
	ServiceDeletedAt gorm.DeletedAt `gorm:"column:service_deleted_at;index" json:"service_deleted_at,omitempty"`
}

func (ServiceModel) TableName() string { return "services" }
