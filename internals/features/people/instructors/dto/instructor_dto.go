package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "tuttiud_backend/internals/features/people/instructors/model"
	helper "tuttiud_backend/internals/helpers"
	"tuttiud_backend/internals/helpers/coerce"
	"tuttiud_backend/internals/helpers/metadata"
)

type InstructorCreateReq struct {
	// Optional: set when the instructor already has an auth user, so
	// the row id matches the user id and writes self-attribute.
	InstructorID *uuid.UUID `json:"instructor_id,omitempty"`

	InstructorName  string  `json:"instructor_name"`
	InstructorEmail *string `json:"instructor_email,omitempty"`
	InstructorPhone *string `json:"instructor_phone,omitempty"`
	InstructorColor *string `json:"instructor_color,omitempty"`

	phone *string
}

func (r *InstructorCreateReq) Normalize() {
	r.InstructorName = strings.TrimSpace(r.InstructorName)
	if r.InstructorEmail != nil {
		e := strings.ToLower(strings.TrimSpace(*r.InstructorEmail))
		if e == "" {
			r.InstructorEmail = nil
		} else {
			r.InstructorEmail = &e
		}
	}
}

func (r *InstructorCreateReq) Validate() string {
	if r.InstructorName == "" {
		return "missing_name"
	}
	if r.InstructorEmail != nil && !helper.IsEmail(*r.InstructorEmail) {
		return "invalid_email"
	}
	if r.InstructorPhone != nil {
		p := coerce.Phone(*r.InstructorPhone)
		if !p.Valid {
			return "invalid_phone"
		}
		r.phone = p.Value
	}
	return ""
}

func (r *InstructorCreateReq) ToModel(orgID uuid.UUID) *model.InstructorModel {
	m := &model.InstructorModel{
		InstructorOrgID:    orgID,
		InstructorName:     r.InstructorName,
		InstructorEmail:    r.InstructorEmail,
		InstructorPhone:    r.phone,
		InstructorIsActive: true,
	}
	if r.InstructorID != nil {
		m.InstructorID = *r.InstructorID
	}
	if r.InstructorColor != nil {
		m.InstructorMetadata = metadata.Encode(map[string]interface{}{
			"instructor_color": *r.InstructorColor,
		})
	}
	return m
}

type InstructorUpdateReq struct {
	InstructorName     *string `json:"instructor_name,omitempty"`
	InstructorEmail    *string `json:"instructor_email,omitempty"`
	InstructorPhone    *string `json:"instructor_phone,omitempty"`
	InstructorColor    *string `json:"instructor_color,omitempty"`
	InstructorIsActive *bool   `json:"instructor_is_active,omitempty"`
}

func (r *InstructorUpdateReq) Apply(m *model.InstructorModel) string {
	if r.InstructorName != nil {
		name := strings.TrimSpace(*r.InstructorName)
		if name == "" {
			return "missing_name"
		}
		m.InstructorName = name
	}
	if r.InstructorEmail != nil {
		e := strings.ToLower(strings.TrimSpace(*r.InstructorEmail))
		if e == "" {
			m.InstructorEmail = nil
		} else {
			if !helper.IsEmail(e) {
				return "invalid_email"
			}
			m.InstructorEmail = &e
		}
	}
	if r.InstructorPhone != nil {
		p := coerce.Phone(*r.InstructorPhone)
		if !p.Valid {
			return "invalid_phone"
		}
		m.InstructorPhone = p.Value
	}
	if r.InstructorColor != nil {
		m.InstructorMetadata = metadata.MergeColumn(m.InstructorMetadata, map[string]interface{}{
			"instructor_color": *r.InstructorColor,
		})
	}
	if r.InstructorIsActive != nil {
		m.InstructorIsActive = *r.InstructorIsActive
	}
	return ""
}

type InstructorResp struct {
	InstructorID        uuid.UUID              `json:"instructor_id"`
	InstructorOrgID     uuid.UUID              `json:"instructor_org_id"`
	InstructorName      string                 `json:"instructor_name"`
	InstructorEmail     *string                `json:"instructor_email,omitempty"`
	InstructorPhone     *string                `json:"instructor_phone,omitempty"`
	InstructorIsActive  bool                   `json:"instructor_is_active"`
	InstructorMetadata  map[string]interface{} `json:"instructor_metadata,omitempty"`
	InstructorCreatedAt time.Time              `json:"instructor_created_at"`
	InstructorUpdatedAt time.Time              `json:"instructor_updated_at"`
}

func FromModel(m *model.InstructorModel) InstructorResp {
	return InstructorResp{
		InstructorID:        m.InstructorID,
		InstructorOrgID:     m.InstructorOrgID,
		InstructorName:      m.InstructorName,
		InstructorEmail:     m.InstructorEmail,
		InstructorPhone:     m.InstructorPhone,
		InstructorIsActive:  m.InstructorIsActive,
		InstructorMetadata:  metadata.Decode(m.InstructorMetadata),
		InstructorCreatedAt: m.InstructorCreatedAt,
		InstructorUpdatedAt: m.InstructorUpdatedAt,
	}
}

func FromModels(ms []model.InstructorModel) []InstructorResp {
	out := make([]InstructorResp, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
