package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Template system types. INTAKE/ONGOING/SUMMARY are auto-provisioned
// per service; CUSTOM templates are user-made.
const (
	TemplateTypeIntake  = "INTAKE"
	TemplateTypeOngoing = "ONGOING"
	TemplateTypeSummary = "SUMMARY"
	TemplateTypeCustom  = "CUSTOM"
)

type ReportTemplateModel struct {
	TemplateID        uuid.UUID `gorm:"column:template_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	TemplateOrgID     uuid.UUID `gorm:"column:template_org_id;type:uuid;not null;index" json:"template_org_id"`
	TemplateServiceID uuid.UUID `gorm:"column:template_service_id;type:uuid;not null;index" json:"template_service_id"`

	TemplateName       string `gorm:"column:template_name;type:varchar(120);not null" json:"template_name"`
	TemplateSystemType string `gorm:"column:template_system_type;type:text;not null;default:CUSTOM" json:"template_system_type"`

	// structure_json.questions[] drives the session form
	TemplateStructure datatypes.JSON `gorm:"column:template_structure;type:jsonb;not null;default:'{}'" json:"template_structure"`

	TemplateIsActive bool `gorm:"column:template_is_active;not null;default:true" json:"template_is_active"`

	TemplateCreatedAt time.Time      `gorm:"column:template_created_at;autoCreateTime" json:"template_created_at"`
	TemplateUpdatedAt time.Time      `gorm:"column:template_updated_at;autoUpdateTime" json:"template_updated_at"`
	TemplateDeletedAt gorm.DeletedAt `gorm:"column:template_deleted_at;index" json:"template_deleted_at,omitempty"`
}

func (ReportTemplateModel) TableName() string { return "report_templates" }

func ValidTemplateType(t string) bool {
	switch t {
	case TemplateTypeIntake, TemplateTypeOngoing, TemplateTypeSummary, TemplateTypeCustom:
		return true
	}
	return false
}
