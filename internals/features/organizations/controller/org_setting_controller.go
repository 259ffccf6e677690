package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	auditService "tuttiud_backend/internals/features/audit/service"
	dto "tuttiud_backend/internals/features/organizations/dto"
	model "tuttiud_backend/internals/features/organizations/model"
	helper "tuttiud_backend/internals/helpers"
	"tuttiud_backend/internals/helpers/metadata"
)

type OrgSettingController struct {
	DB *gorm.DB
}

func NewOrgSettingController(db *gorm.DB) *OrgSettingController {
	return &OrgSettingController{DB: db}
}

// GET /api/a/settings
func (h *OrgSettingController) List(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	var rows []model.OrgSettingModel
	if err := h.DB.
		Where("org_setting_org_id = ?", orgID).
		Order("org_setting_key ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "", dto.SettingsFromModels(rows))
}

// GET /api/a/settings/:key
// A key that was never written reads as an empty object, not 404, so
// the client does not need to special-case first use.
func (h *OrgSettingController) Get(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_setting_key")
	}

	var row model.OrgSettingModel
	err = h.DB.
		Where("org_setting_org_id = ? AND org_setting_key = ?", orgID, key).
		First(&row).Error
	if helper.IsNotFound(err) {
		return helper.JsonOK(c, "", dto.SettingResp{
			OrgSettingKey:   key,
			OrgSettingValue: map[string]interface{}{},
		})
	}
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "", dto.SettingFromModel(&row))
}

// PUT /api/a/settings/:key
// Most keys are replaced wholesale. The permissions key is merged
// additively: keys already stored win over the incoming defaults, so a
// client pushing its built-in permission map never downgrades an org
// that an owner has tuned by hand.
func (h *OrgSettingController) Put(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)
	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_setting_key")
	}

	var incoming map[string]interface{}
	if err := c.BodyParser(&incoming); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	if incoming == nil {
		incoming = map[string]interface{}{}
	}

	var row model.OrgSettingModel
	err = h.DB.
		Where("org_setting_org_id = ? AND org_setting_key = ?", orgID, key).
		First(&row).Error
	switch {
	case helper.IsNotFound(err):
		row = model.OrgSettingModel{
			OrgSettingOrgID: orgID,
			OrgSettingKey:   key,
			OrgSettingValue: metadata.Encode(incoming),
		}
		if err := h.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "org_setting_org_id"},
				{Name: "org_setting_key"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"org_setting_value", "org_setting_updated_at"}),
		}).Create(&row).Error; err != nil {
			return helper.JsonDBError(c, err)
		}
	case err != nil:
		return helper.JsonDBError(c, err)
	default:
		if key == model.SettingPermissions {
			// stored values layered over the incoming defaults
			row.OrgSettingValue = metadata.Encode(metadata.Merge(incoming, metadata.Decode(row.OrgSettingValue)))
		} else {
			row.OrgSettingValue = metadata.Encode(incoming)
		}
		if err := h.DB.Save(&row).Error; err != nil {
			return helper.JsonDBError(c, err)
		}
	}

	auditService.Record(h.DB, orgID, userID, "setting.put", "org_setting", &row.OrgSettingID,
		map[string]interface{}{"key": key})
	return helper.JsonUpdated(c, "setting saved", dto.SettingFromModel(&row))
}
