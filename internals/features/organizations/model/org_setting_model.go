package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Well-known org_settings keys.
const (
	SettingPermissions       = "permissions"
	SettingStudentTags       = "student_tags"
	SettingIntakeFieldMap    = "intake_field_map"
	SettingSessionFormSchema = "session_form_schema"
)

// OrgSettingModel is the per-organization key/value configuration row.
// Values are free-form JSON; the permissions key is maintained with
// additive merge so concurrent default writers do not clobber tuning.
type OrgSettingModel struct {
	OrgSettingID    uuid.UUID      `gorm:"column:org_setting_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"org_setting_id"`
	OrgSettingOrgID uuid.UUID      `gorm:"column:org_setting_org_id;type:uuid;not null;index:idx_org_setting_key,unique" json:"org_setting_org_id"`
	OrgSettingKey   string         `gorm:"column:org_setting_key;type:varchar(60);not null;index:idx_org_setting_key,unique" json:"org_setting_key"`
	OrgSettingValue datatypes.JSON `gorm:"column:org_setting_value;type:jsonb;not null;default:'{}'" json:"org_setting_value"`

	OrgSettingCreatedAt time.Time `gorm:"column:org_setting_created_at;autoCreateTime" json:"org_setting_created_at"`
	OrgSettingUpdatedAt time.Time `gorm:"column:org_setting_updated_at;autoUpdateTime" json:"org_setting_updated_at"`
}

func (OrgSettingModel) TableName() string { return "org_settings" }
