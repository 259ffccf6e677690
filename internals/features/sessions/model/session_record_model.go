package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionRecordModel is one submitted session report. A row with a nil
// student id is a "loose" report awaiting admin triage; its metadata
// must carry an unassigned_details block. Assignment mutates the same
// row (the id is stable), rejection soft-deletes it in place.
//
// Deletion is modeled with an explicit deleted flag instead of
// gorm.DeletedAt because rejected loose reports must stay readable in
// the triage queue and the resubmission path.
type SessionRecordModel struct {
	SessionID    uuid.UUID `gorm:"column:session_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	SessionOrgID uuid.UUID `gorm:"column:session_org_id;type:uuid;not null;index" json:"session_org_id"`

	SessionStudentID *uuid.UUID `gorm:"column:session_student_id;type:uuid;index" json:"session_student_id,omitempty"`

	SessionDate time.Time `gorm:"column:session_date;type:date;not null;index" json:"session_date"`

	// question-id -> answer
	SessionContent datatypes.JSON `gorm:"column:session_content;type:jsonb;not null;default:'{}'" json:"session_content"`

	SessionInstructorID uuid.UUID `gorm:"column:session_instructor_id;type:uuid;not null;index" json:"session_instructor_id"`

	// Free-text service name kept for legacy rows; resolved ids are
	// stamped when auto-selection succeeds.
	SessionServiceContext *string    `gorm:"column:session_service_context;type:varchar(120)" json:"session_service_context,omitempty"`
	SessionServiceID      *uuid.UUID `gorm:"column:session_service_id;type:uuid" json:"session_service_id,omitempty"`
	SessionTemplateID     *uuid.UUID `gorm:"column:session_template_id;type:uuid" json:"session_template_id,omitempty"`

	SessionMetadata datatypes.JSON `gorm:"column:session_metadata;type:jsonb" json:"session_metadata,omitempty"`

	SessionDeleted   bool       `gorm:"column:session_deleted;not null;default:false;index" json:"session_deleted"`
	SessionDeletedAt *time.Time `gorm:"column:session_deleted_at" json:"session_deleted_at,omitempty"`

	SessionCreatedAt time.Time `gorm:"column:session_created_at;autoCreateTime" json:"session_created_at"`
	SessionUpdatedAt time.Time `gorm:"column:session_updated_at;autoUpdateTime" json:"session_updated_at"`
}

func (SessionRecordModel) TableName() string { return "session_records" }

// IsLoose reports whether the record is an unassigned report.
func (m *SessionRecordModel) IsLoose() bool { return m.SessionStudentID == nil }
