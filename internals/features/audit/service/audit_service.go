package service

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "tuttiud_backend/internals/features/audit/model"
)

// Record writes an audit row best-effort: failures are logged and never
// bubble up to the primary operation.
func Record(db *gorm.DB, orgID, userID uuid.UUID, action, entity string, entityID *uuid.UUID, detail map[string]interface{}) {
	var detailJSON datatypes.JSON
	if detail != nil {
		if b, err := json.Marshal(detail); err == nil {
			detailJSON = datatypes.JSON(b)
		}
	}
	row := model.AuditLogModel{
		AuditOrgID:    orgID,
		AuditUserID:   userID,
		AuditAction:   action,
		AuditEntity:   entity,
		AuditEntityID: entityID,
		AuditDetail:   detailJSON,
	}
	if err := db.Create(&row).Error; err != nil {
		log.Printf("[WARN] audit write failed action=%s entity=%s: %v", action, entity, err)
	}
}
