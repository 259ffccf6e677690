package model

import (
	"time"

	"github.com/google/uuid"
)

// OrgMembershipModel links an auth user to an organization with a role.
// The (org_id, user_id) pair is unique; role is checked against
// ('member','admin','owner') in SQL.
type OrgMembershipModel struct {
	MembershipID     uuid.UUID `gorm:"column:membership_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"membership_id"`
	MembershipOrgID  uuid.UUID `gorm:"column:membership_org_id;type:uuid;not null;index:idx_membership_org_user,unique" json:"membership_org_id"`
	MembershipUserID uuid.UUID `gorm:"column:membership_user_id;type:uuid;not null;index:idx_membership_org_user,unique" json:"membership_user_id"`
	MembershipRole   string    `gorm:"column:membership_role;type:text;not null;default:member" json:"membership_role"`

	MembershipCreatedAt time.Time `gorm:"column:membership_created_at;autoCreateTime" json:"membership_created_at"`
	MembershipUpdatedAt time.Time `gorm:"column:membership_updated_at;autoUpdateTime" json:"membership_updated_at"`
}

func (OrgMembershipModel) TableName() string { return "org_memberships" }
