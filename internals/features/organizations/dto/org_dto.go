package dto

import (
	"time"

	"github.com/google/uuid"

	model "tuttiud_backend/internals/features/organizations/model"
	"tuttiud_backend/internals/helpers/metadata"
)

type OrgResp struct {
	OrgID        uuid.UUID `json:"org_id"`
	OrgName      string    `json:"org_name"`
	OrgSlug      string    `json:"org_slug"`
	OrgCreatedAt time.Time `json:"org_created_at"`
}

func OrgFromModel(m *model.OrgModel) OrgResp {
	return OrgResp{
		OrgID:        m.OrgID,
		OrgName:      m.OrgName,
		OrgSlug:      m.OrgSlug,
		OrgCreatedAt: m.OrgCreatedAt,
	}
}

type SettingResp struct {
	OrgSettingKey       string                 `json:"org_setting_key"`
	OrgSettingValue     map[string]interface{} `json:"org_setting_value"`
	OrgSettingUpdatedAt time.Time              `json:"org_setting_updated_at"`
}

func SettingFromModel(m *model.OrgSettingModel) SettingResp {
	return SettingResp{
		OrgSettingKey:       m.OrgSettingKey,
		OrgSettingValue:     metadata.Decode(m.OrgSettingValue),
		OrgSettingUpdatedAt: m.OrgSettingUpdatedAt,
	}
}

func SettingsFromModels(ms []model.OrgSettingModel) []SettingResp {
	out := make([]SettingResp, 0, len(ms))
	for i := range ms {
		out = append(out, SettingFromModel(&ms[i]))
	}
	return out
}

type MembershipResp struct {
	MembershipID        uuid.UUID `json:"membership_id"`
	MembershipUserID    uuid.UUID `json:"membership_user_id"`
	MembershipRole      string    `json:"membership_role"`
	MembershipCreatedAt time.Time `json:"membership_created_at"`
}

func MembershipFromModel(m *model.OrgMembershipModel) MembershipResp {
	return MembershipResp{
		MembershipID:        m.MembershipID,
		MembershipUserID:    m.MembershipUserID,
		MembershipRole:      m.MembershipRole,
		MembershipCreatedAt: m.MembershipCreatedAt,
	}
}

func MembershipsFromModels(ms []model.OrgMembershipModel) []MembershipResp {
	out := make([]MembershipResp, 0, len(ms))
	for i := range ms {
		out = append(out, MembershipFromModel(&ms[i]))
	}
	return out
}
