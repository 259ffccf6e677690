package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "tuttiud_backend/internals/features/catalog/services/model"
	"tuttiud_backend/internals/helpers/metadata"
)

/* ============ services ============ */

type ServiceCreateReq struct {
	ServiceName             string  `json:"service_name"`
	ServiceLinkedStudentTag *string `json:"service_linked_student_tag,omitempty"`
}

func (r *ServiceCreateReq) Normalize() {
	r.ServiceName = strings.TrimSpace(r.ServiceName)
	if r.ServiceLinkedStudentTag != nil {
		t := strings.TrimSpace(*r.ServiceLinkedStudentTag)
		if t == "" {
			r.ServiceLinkedStudentTag = nil
		} else {
			r.ServiceLinkedStudentTag = &t
		}
	}
}

func (r *ServiceCreateReq) Validate() string {
	if r.ServiceName == "" {
		return "missing_name"
	}
	return ""
}

func (r *ServiceCreateReq) ToModel(orgID uuid.UUID) *model.ServiceModel {
	return &model.ServiceModel{
		ServiceOrgID:            orgID,
		ServiceName:             r.ServiceName,
		ServiceLinkedStudentTag: r.ServiceLinkedStudentTag,
		ServiceIsActive:         true,
	}
}

type ServiceUpdateReq struct {
	ServiceName             *string `json:"service_name,omitempty"`
	ServiceLinkedStudentTag *string `json:"service_linked_student_tag,omitempty"`
	ServiceIsActive         *bool   `json:"service_is_active,omitempty"`
}

func (r *ServiceUpdateReq) Apply(m *model.ServiceModel) string {
	if r.ServiceName != nil {
		name := strings.TrimSpace(*r.ServiceName)
		if name == "" {
			return "missing_name"
		}
		m.ServiceName = name
	}
	if r.ServiceLinkedStudentTag != nil {
		t := strings.TrimSpace(*r.ServiceLinkedStudentTag)
		if t == "" {
			m.ServiceLinkedStudentTag = nil
		} else {
			m.ServiceLinkedStudentTag = &t
		}
	}
	if r.ServiceIsActive != nil {
		m.ServiceIsActive = *r.ServiceIsActive
	}
	return ""
}

type ServiceResp struct {
	ServiceID               uuid.UUID `json:"service_id"`
	ServiceOrgID            uuid.UUID `json:"service_org_id"`
	ServiceName             string    `json:"service_name"`
	ServiceLinkedStudentTag *string   `json:"service_linked_student_tag,omitempty"`
	ServiceIsActive         bool      `json:"service_is_active"`
	ServiceCreatedAt        time.Time `json:"service_created_at"`
	ServiceUpdatedAt        time.Time `json:"service_updated_at"`
}

func ServiceFromModel(m *model.ServiceModel) ServiceResp {
	return ServiceResp{
		ServiceID:               m.ServiceID,
		ServiceOrgID:            m.ServiceOrgID,
		ServiceName:             m.ServiceName,
		ServiceLinkedStudentTag: m.ServiceLinkedStudentTag,
		ServiceIsActive:         m.ServiceIsActive,
		ServiceCreatedAt:        m.ServiceCreatedAt,
		ServiceUpdatedAt:        m.ServiceUpdatedAt,
	}
}

func ServicesFromModels(ms []model.ServiceModel) []ServiceResp {
	out := make([]ServiceResp, 0, len(ms))
	for i := range ms {
		out = append(out, ServiceFromModel(&ms[i]))
	}
	return out
}

/* ============ templates ============ */

type TemplateCreateReq struct {
	TemplateServiceID  uuid.UUID              `json:"template_service_id"`
	TemplateName       string                 `json:"template_name"`
	TemplateSystemType string                 `json:"template_system_type"`
	TemplateStructure  map[string]interface{} `json:"template_structure"`
}

func (r *TemplateCreateReq) Normalize() {
	r.TemplateName = strings.TrimSpace(r.TemplateName)
	r.TemplateSystemType = strings.ToUpper(strings.TrimSpace(r.TemplateSystemType))
	if r.TemplateSystemType == "" {
		r.TemplateSystemType = model.TemplateTypeCustom
	}
}

func (r *TemplateCreateReq) Validate() string {
	if r.TemplateServiceID == uuid.Nil {
		return "invalid_service_id"
	}
	if r.TemplateName == "" {
		return "missing_name"
	}
	if !model.ValidTemplateType(r.TemplateSystemType) {
		return "invalid_template_type"
	}
	return ""
}

func (r *TemplateCreateReq) ToModel(orgID uuid.UUID) *model.ReportTemplateModel {
	return &model.ReportTemplateModel{
		TemplateOrgID:      orgID,
		TemplateServiceID:  r.TemplateServiceID,
		TemplateName:       r.TemplateName,
		TemplateSystemType: r.TemplateSystemType,
		TemplateStructure:  metadata.Encode(r.TemplateStructure),
		TemplateIsActive:   true,
	}
}

type TemplateResp struct {
	TemplateID         uuid.UUID              `json:"template_id"`
	TemplateOrgID      uuid.UUID              `json:"template_org_id"`
	TemplateServiceID  uuid.UUID              `json:"template_service_id"`
	TemplateName       string                 `json:"template_name"`
	TemplateSystemType string                 `json:"template_system_type"`
	TemplateStructure  map[string]interface{} `json:"template_structure"`
	TemplateIsActive   bool                   `json:"template_is_active"`
	TemplateCreatedAt  time.Time              `json:"template_created_at"`
	TemplateUpdatedAt  time.Time              `json:"template_updated_at"`
}

func TemplateFromModel(m *model.ReportTemplateModel) TemplateResp {
	return TemplateResp{
		TemplateID:         m.TemplateID,
		TemplateOrgID:      m.TemplateOrgID,
		TemplateServiceID:  m.TemplateServiceID,
		TemplateName:       m.TemplateName,
		TemplateSystemType: m.TemplateSystemType,
		TemplateStructure:  metadata.Decode(m.TemplateStructure),
		TemplateIsActive:   m.TemplateIsActive,
		TemplateCreatedAt:  m.TemplateCreatedAt,
		TemplateUpdatedAt:  m.TemplateUpdatedAt,
	}
}

func TemplatesFromModels(ms []model.ReportTemplateModel) []TemplateResp {
	out := make([]TemplateResp, 0, len(ms))
	for i := range ms {
		out = append(out, TemplateFromModel(&ms[i]))
	}
	return out
}
