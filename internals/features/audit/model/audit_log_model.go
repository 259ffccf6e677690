package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLogModel struct {
	AuditID       uuid.UUID  `gorm:"column:audit_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_id"`
	AuditOrgID    uuid.UUID  `gorm:"column:audit_org_id;type:uuid;not null;index" json:"audit_org_id"`
	AuditUserID   uuid.UUID  `gorm:"column:audit_user_id;type:uuid;not null" json:"audit_user_id"`
	AuditAction   string     `gorm:"column:audit_action;type:varchar(60);not null" json:"audit_action"`
	AuditEntity   string     `gorm:"column:audit_entity;type:varchar(60);not null" json:"audit_entity"`
	AuditEntityID *uuid.UUID `gorm:"column:audit_entity_id;type:uuid" json:"audit_entity_id,omitempty"`

	AuditDetail datatypes.JSON `gorm:"column:audit_detail;type:jsonb" json:"audit_detail,omitempty"`

	AuditCreatedAt time.Time `gorm:"column:audit_created_at;autoCreateTime" json:"audit_created_at"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }
