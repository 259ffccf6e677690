package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	model "tuttiud_backend/internals/features/people/students/model"
	"tuttiud_backend/internals/helpers/coerce"
	"tuttiud_backend/internals/helpers/metadata"
)

/* =========================================================
   REQUEST: CREATE
   ========================================================= */

type StudentCreateReq struct {
	StudentName                 string                 `json:"student_name"`
	StudentNationalID           string                 `json:"student_national_id"`
	StudentPhone                *string                `json:"student_phone,omitempty"`
	StudentParentName           *string                `json:"student_parent_name,omitempty"`
	StudentParentPhone          *string                `json:"student_parent_phone,omitempty"`
	StudentAssignedInstructorID *uuid.UUID             `json:"student_assigned_instructor_id,omitempty"`
	StudentDefaultServiceID     *uuid.UUID             `json:"student_default_service_id,omitempty"`
	StudentWeeklyDay            *string                `json:"student_weekly_day,omitempty"`
	StudentWeeklyTime           *string                `json:"student_weekly_time,omitempty"`
	StudentTags                 []string               `json:"student_tags,omitempty"`
	StudentMetadata             map[string]interface{} `json:"student_metadata,omitempty"`

	nationalID string
	phone      *string
	parentTel  *string
	weeklyDay  *int
	weeklyTime *string
}

func (r *StudentCreateReq) Normalize() {
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.StudentTags = coerce.Tags(r.StudentTags)
}

// Validate coerces every untrusted field; the first failure aborts the
// whole write with its machine code.
func (r *StudentCreateReq) Validate() string {
	if r.StudentName == "" {
		return "missing_name"
	}

	nid := coerce.NationalID(r.StudentNationalID)
	if !nid.Provided {
		return "missing_national_id"
	}
	if !nid.Valid {
		return "invalid_national_id"
	}
	r.nationalID = *nid.Value

	if r.StudentPhone != nil {
		p := coerce.Phone(*r.StudentPhone)
		if !p.Valid {
			return "invalid_phone"
		}
		r.phone = p.Value
	}
	if r.StudentParentPhone != nil {
		p := coerce.Phone(*r.StudentParentPhone)
		if !p.Valid {
			return "invalid_phone"
		}
		r.parentTel = p.Value
	}

	if r.StudentWeeklyDay != nil {
		d := coerce.DayOfWeek(*r.StudentWeeklyDay)
		if !d.Valid {
			return "invalid_day_of_week"
		}
		if d.Provided {
			n := int((*d.Value)[0] - '0')
			r.weeklyDay = &n
		}
	}
	if r.StudentWeeklyTime != nil {
		t := coerce.TimeOfDay(*r.StudentWeeklyTime)
		if !t.Valid {
			return "missing_time"
		}
		r.weeklyTime = t.Value
	}
	return ""
}

func (r *StudentCreateReq) ToModel(orgID uuid.UUID) *model.StudentModel {
	return &model.StudentModel{
		StudentOrgID:                orgID,
		StudentName:                 r.StudentName,
		StudentNationalID:           r.nationalID,
		StudentPhone:                r.phone,
		StudentParentName:           trimPtr(r.StudentParentName),
		StudentParentPhone:          r.parentTel,
		StudentAssignedInstructorID: r.StudentAssignedInstructorID,
		StudentDefaultServiceID:     r.StudentDefaultServiceID,
		StudentWeeklyDay:            r.weeklyDay,
		StudentWeeklyTime:           r.weeklyTime,
		StudentTags:                 pq.StringArray(r.StudentTags),
		StudentMetadata:             metadata.Encode(r.StudentMetadata),
		StudentIsActive:             true,
	}
}

/* =========================================================
   REQUEST: UPDATE (partial; nil = leave untouched)
   ========================================================= */

type StudentUpdateReq struct {
	StudentName                 *string                `json:"student_name,omitempty"`
	StudentPhone                *string                `json:"student_phone,omitempty"`
	StudentParentName           *string                `json:"student_parent_name,omitempty"`
	StudentParentPhone          *string                `json:"student_parent_phone,omitempty"`
	StudentAssignedInstructorID *uuid.UUID             `json:"student_assigned_instructor_id,omitempty"`
	StudentDefaultServiceID     *uuid.UUID             `json:"student_default_service_id,omitempty"`
	StudentWeeklyDay            *string                `json:"student_weekly_day,omitempty"`
	StudentWeeklyTime           *string                `json:"student_weekly_time,omitempty"`
	StudentTags                 []string               `json:"student_tags,omitempty"`
	StudentIsActive             *bool                  `json:"student_is_active,omitempty"`
	StudentMetadata             map[string]interface{} `json:"student_metadata,omitempty"`
}

func (r *StudentUpdateReq) Apply(m *model.StudentModel) string {
	if r.StudentName != nil {
		name := strings.TrimSpace(*r.StudentName)
		if name == "" {
			return "missing_name"
		}
		m.StudentName = name
	}
	if r.StudentPhone != nil {
		p := coerce.Phone(*r.StudentPhone)
		if !p.Valid {
			return "invalid_phone"
		}
		m.StudentPhone = p.Value
	}
	if r.StudentParentName != nil {
		m.StudentParentName = trimPtr(r.StudentParentName)
	}
	if r.StudentParentPhone != nil {
		p := coerce.Phone(*r.StudentParentPhone)
		if !p.Valid {
			return "invalid_phone"
		}
		m.StudentParentPhone = p.Value
	}
	if r.StudentAssignedInstructorID != nil {
		m.StudentAssignedInstructorID = r.StudentAssignedInstructorID
	}
	if r.StudentDefaultServiceID != nil {
		m.StudentDefaultServiceID = r.StudentDefaultServiceID
	}
	if r.StudentWeeklyDay != nil {
		d := coerce.DayOfWeek(*r.StudentWeeklyDay)
		if !d.Valid {
			return "invalid_day_of_week"
		}
		if d.Provided {
			n := int((*d.Value)[0] - '0')
			m.StudentWeeklyDay = &n
		} else {
			m.StudentWeeklyDay = nil
		}
	}
	if r.StudentWeeklyTime != nil {
		t := coerce.TimeOfDay(*r.StudentWeeklyTime)
		if !t.Valid {
			return "missing_time"
		}
		m.StudentWeeklyTime = t.Value
	}
	if r.StudentTags != nil {
		m.StudentTags = pq.StringArray(coerce.Tags(r.StudentTags))
	}
	if r.StudentIsActive != nil {
		m.StudentIsActive = *r.StudentIsActive
	}
	if r.StudentMetadata != nil {
		m.StudentMetadata = metadata.MergeColumn(m.StudentMetadata, r.StudentMetadata)
	}
	return ""
}

/* =========================================================
   RESPONSE DTO
   ========================================================= */

type StudentResp struct {
	StudentID                   uuid.UUID              `json:"student_id"`
	StudentOrgID                uuid.UUID              `json:"student_org_id"`
	StudentName                 string                 `json:"student_name"`
	StudentNationalID           string                 `json:"student_national_id"`
	StudentPhone                *string                `json:"student_phone,omitempty"`
	StudentParentName           *string                `json:"student_parent_name,omitempty"`
	StudentParentPhone          *string                `json:"student_parent_phone,omitempty"`
	StudentAssignedInstructorID *uuid.UUID             `json:"student_assigned_instructor_id,omitempty"`
	StudentDefaultServiceID     *uuid.UUID             `json:"student_default_service_id,omitempty"`
	StudentWeeklyDay            *int                   `json:"student_weekly_day,omitempty"`
	StudentWeeklyTime           *string                `json:"student_weekly_time,omitempty"`
	StudentTags                 []string               `json:"student_tags"`
	StudentIntakeResponses      map[string]interface{} `json:"student_intake_responses,omitempty"`
	StudentNeedsIntakeApproval  bool                   `json:"student_needs_intake_approval"`
	StudentMetadata             map[string]interface{} `json:"student_metadata,omitempty"`
	StudentIsActive             bool                   `json:"student_is_active"`
	StudentCreatedAt            time.Time              `json:"student_created_at"`
	StudentUpdatedAt            time.Time              `json:"student_updated_at"`
}

func FromModel(m *model.StudentModel) StudentResp {
	return StudentResp{
		StudentID:                   m.StudentID,
		StudentOrgID:                m.StudentOrgID,
		StudentName:                 m.StudentName,
		StudentNationalID:           m.StudentNationalID,
		StudentPhone:                m.StudentPhone,
		StudentParentName:           m.StudentParentName,
		StudentParentPhone:          m.StudentParentPhone,
		StudentAssignedInstructorID: m.StudentAssignedInstructorID,
		StudentDefaultServiceID:     m.StudentDefaultServiceID,
		StudentWeeklyDay:            m.StudentWeeklyDay,
		StudentWeeklyTime:           m.StudentWeeklyTime,
		StudentTags:                 append([]string(nil), m.StudentTags...),
		StudentIntakeResponses:      metadata.Decode(m.StudentIntakeResponses),
		StudentNeedsIntakeApproval:  m.StudentNeedsIntakeApproval,
		StudentMetadata:             metadata.Decode(m.StudentMetadata),
		StudentIsActive:             m.StudentIsActive,
		StudentCreatedAt:            m.StudentCreatedAt,
		StudentUpdatedAt:            m.StudentUpdatedAt,
	}
}

func FromModels(ms []model.StudentModel) []StudentResp {
	out := make([]StudentResp, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
