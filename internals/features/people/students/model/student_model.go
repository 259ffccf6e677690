package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudentModel struct {
	// PK
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`

	// Tenant scope; shares the unique index with the national id so the
	// same id can exist in different orgs.
	StudentOrgID uuid.UUID `gorm:"column:student_org_id;type:uuid;not null;index:idx_student_org_national,unique" json:"student_org_id"`

	StudentName string `gorm:"column:student_name;type:varchar(120);not null" json:"student_name"`

	// Coerced national id, 9 digits zero-padded; unique within the org.
	StudentNationalID string `gorm:"column:student_national_id;type:varchar(9);not null;index:idx_student_org_national,unique" json:"student_national_id"`

	// Contact
	StudentPhone       *string `gorm:"column:student_phone;type:varchar(12)" json:"student_phone,omitempty"`
	StudentParentName  *string `gorm:"column:student_parent_name;type:varchar(120)" json:"student_parent_name,omitempty"`
	StudentParentPhone *string `gorm:"column:student_parent_phone;type:varchar(12)" json:"student_parent_phone,omitempty"`

	// Assignment & defaults
	StudentAssignedInstructorID *uuid.UUID `gorm:"column:student_assigned_instructor_id;type:uuid;index" json:"student_assigned_instructor_id,omitempty"`
	StudentDefaultServiceID     *uuid.UUID `gorm:"column:student_default_service_id;type:uuid" json:"student_default_service_id,omitempty"`

	// Weekly slot (canonical day 0-6, Sunday=0; time HH:MM)
	StudentWeeklyDay  *int    `gorm:"column:student_weekly_day" json:"student_weekly_day,omitempty"`
	StudentWeeklyTime *string `gorm:"column:student_weekly_time;type:varchar(5)" json:"student_weekly_time,omitempty"`

	StudentTags pq.StringArray `gorm:"column:student_tags;type:text[]" json:"student_tags,omitempty"`

	// Intake
	StudentIntakeResponses      datatypes.JSON `gorm:"column:student_intake_responses;type:jsonb" json:"student_intake_responses,omitempty"`
	StudentNeedsIntakeApproval  bool           `gorm:"column:student_needs_intake_approval;not null;default:false" json:"student_needs_intake_approval"`

	StudentMetadata datatypes.JSON `gorm:"column:student_metadata;type:jsonb" json:"student_metadata,omitempty"`

	StudentIsActive bool `gorm:"column:student_is_active;not null;default:true" json:"student_is_active"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }
