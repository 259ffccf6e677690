package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InstructorModel. When the instructor is also a logged-in member the
// row id equals the auth user id, so sessions can attribute the caller
// directly without a join.
type InstructorModel struct {
	InstructorID    uuid.UUID `gorm:"column:instructor_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"instructor_id"`
	InstructorOrgID uuid.UUID `gorm:"column:instructor_org_id;type:uuid;not null;index" json:"instructor_org_id"`

	InstructorName  string  `gorm:"column:instructor_name;type:varchar(120);not null" json:"instructor_name"`
	InstructorEmail *string `gorm:"column:instructor_email;type:varchar(120)" json:"instructor_email,omitempty"`
	InstructorPhone *string `gorm:"column:instructor_phone;type:varchar(12)" json:"instructor_phone,omitempty"`

	InstructorIsActive bool `gorm:"column:instructor_is_active;not null;default:true" json:"instructor_is_active"`

	// metadata.instructor_color drives the calendar color in the SPA
	InstructorMetadata datatypes.JSON `gorm:"column:instructor_metadata;type:jsonb" json:"instructor_metadata,omitempty"`

	InstructorCreatedAt time.Time      `gorm:"column:instructor_created_at;autoCreateTime" json:"instructor_created_at"`
	InstructorUpdatedAt time.Time      `gorm:"column:instructor_updated_at;autoUpdateTime" json:"instructor_updated_at"`
	InstructorDeletedAt gorm.DeletedAt `gorm:"column:instructor_deleted_at;index" json:"instructor_deleted_at,omitempty"`
}

func (InstructorModel) TableName() string { return "instructors" }
