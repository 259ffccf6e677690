package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "tuttiud_backend/internals/features/sessions/model"
	service "tuttiud_backend/internals/features/sessions/service"
	"tuttiud_backend/internals/helpers/coerce"
	"tuttiud_backend/internals/helpers/metadata"
)

/* =========================================================
   REQUEST: CREATE (normal write + loose report + resubmission)
   ========================================================= */

type SessionCreateReq struct {
	SessionStudentID      *uuid.UUID             `json:"session_student_id,omitempty"`
	SessionDate           string                 `json:"session_date"`
	SessionContent        map[string]interface{} `json:"session_content"`
	SessionInstructorID   *uuid.UUID             `json:"session_instructor_id,omitempty"`
	SessionServiceContext *string                `json:"session_service_context,omitempty"`
	SessionServiceID      *uuid.UUID             `json:"session_service_id,omitempty"`
	SessionTemplateID     *uuid.UUID             `json:"session_template_id,omitempty"`
	SessionMetadata       map[string]interface{} `json:"session_metadata,omitempty"`

	parsedDate time.Time
}

func (r *SessionCreateReq) Normalize() {
	r.SessionDate = strings.TrimSpace(r.SessionDate)
	if r.SessionServiceContext != nil {
		v := strings.TrimSpace(*r.SessionServiceContext)
		if v == "" {
			r.SessionServiceContext = nil
		} else {
			r.SessionServiceContext = &v
		}
	}
	if r.SessionContent == nil {
		r.SessionContent = map[string]interface{}{}
	}
	if r.SessionMetadata == nil {
		r.SessionMetadata = map[string]interface{}{}
	}
}

// Validate returns "" or a machine error code. Loose reports (no
// student) must carry a complete unassigned_details block; its time is
// run through the coercer so "9:30" and "09:30" are both accepted.
func (r *SessionCreateReq) Validate() string {
	if r.SessionDate == "" {
		return service.ErrMissingDate
	}
	d, err := time.Parse("2006-01-02", r.SessionDate)
	if err != nil {
		return service.ErrMissingDate
	}
	r.parsedDate = d

	if r.SessionStudentID == nil {
		raw, found := r.SessionMetadata[metadata.KeyUnassignedDetails].(map[string]interface{})
		if !found {
			return service.ErrMissingUnassignedDetails
		}
		name, _ := raw["name"].(string)
		reason, _ := raw["reason"].(string)
		timeStr, _ := raw["time"].(string)
		if strings.TrimSpace(name) == "" {
			return "missing_name"
		}
		if strings.TrimSpace(reason) == "" {
			return service.ErrMissingReason
		}
		t := coerce.TimeOfDay(timeStr)
		if !t.Provided || !t.Valid {
			return service.ErrMissingTime
		}
		raw["time"] = *t.Value
	}
	return ""
}

// ResubmittedFrom extracts metadata.resubmitted_from when the write is
// a resubmission of a rejected loose report.
func (r *SessionCreateReq) ResubmittedFrom() *uuid.UUID {
	v, _ := r.SessionMetadata[metadata.KeyResubmittedFrom].(string)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func (r *SessionCreateReq) ToModel(orgID, instructorID uuid.UUID) *model.SessionRecordModel {
	return &model.SessionRecordModel{
		SessionOrgID:          orgID,
		SessionStudentID:      r.SessionStudentID,
		SessionDate:           r.parsedDate,
		SessionContent:        metadata.Encode(r.SessionContent),
		SessionInstructorID:   instructorID,
		SessionServiceContext: r.SessionServiceContext,
		SessionServiceID:      r.SessionServiceID,
		SessionTemplateID:     r.SessionTemplateID,
		SessionMetadata:       metadata.Encode(r.SessionMetadata),
	}
}

/* =========================================================
   REQUEST: UPDATE (partial)
   ========================================================= */

type SessionUpdateReq struct {
	SessionDate     *string                `json:"session_date,omitempty"`
	SessionContent  map[string]interface{} `json:"session_content,omitempty"`
	SessionMetadata map[string]interface{} `json:"session_metadata,omitempty"`

	parsedDate *time.Time
}

func (r *SessionUpdateReq) Validate() string {
	if r.SessionDate != nil {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.SessionDate))
		if err != nil {
			return service.ErrMissingDate
		}
		r.parsedDate = &d
	}
	return ""
}

// Apply merges the patch into the row; metadata is merged additively,
// content is replaced wholesale (the form posts the full answer map).
func (r *SessionUpdateReq) Apply(m *model.SessionRecordModel) {
	if r.parsedDate != nil {
		m.SessionDate = *r.parsedDate
	}
	if r.SessionContent != nil {
		m.SessionContent = metadata.Encode(r.SessionContent)
	}
	if r.SessionMetadata != nil {
		m.SessionMetadata = metadata.MergeColumn(m.SessionMetadata, r.SessionMetadata)
	}
}

/* =========================================================
   RESPONSE DTO
   ========================================================= */

type SessionResp struct {
	SessionID             uuid.UUID              `json:"session_id"`
	SessionOrgID          uuid.UUID              `json:"session_org_id"`
	SessionStudentID      *uuid.UUID             `json:"session_student_id,omitempty"`
	SessionDate           string                 `json:"session_date"`
	SessionContent        map[string]interface{} `json:"session_content"`
	SessionInstructorID   uuid.UUID              `json:"session_instructor_id"`
	SessionServiceContext *string                `json:"session_service_context,omitempty"`
	SessionServiceID      *uuid.UUID             `json:"session_service_id,omitempty"`
	SessionTemplateID     *uuid.UUID             `json:"session_template_id,omitempty"`
	SessionMetadata       map[string]interface{} `json:"session_metadata,omitempty"`
	SessionDeleted        bool                   `json:"session_deleted"`
	SessionDeletedAt      *time.Time             `json:"session_deleted_at,omitempty"`
	SessionCreatedAt      time.Time              `json:"session_created_at"`
	SessionUpdatedAt      time.Time              `json:"session_updated_at"`
}

func FromModel(m *model.SessionRecordModel) SessionResp {
	return SessionResp{
		SessionID:             m.SessionID,
		SessionOrgID:          m.SessionOrgID,
		SessionStudentID:      m.SessionStudentID,
		SessionDate:           m.SessionDate.Format("2006-01-02"),
		SessionContent:        metadata.Decode(m.SessionContent),
		SessionInstructorID:   m.SessionInstructorID,
		SessionServiceContext: m.SessionServiceContext,
		SessionServiceID:      m.SessionServiceID,
		SessionTemplateID:     m.SessionTemplateID,
		SessionMetadata:       metadata.Decode(m.SessionMetadata),
		SessionDeleted:        m.SessionDeleted,
		SessionDeletedAt:      m.SessionDeletedAt,
		SessionCreatedAt:      m.SessionCreatedAt,
		SessionUpdatedAt:      m.SessionUpdatedAt,
	}
}

func FromModels(ms []model.SessionRecordModel) []SessionResp {
	out := make([]SessionResp, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
