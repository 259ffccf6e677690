package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "tuttiud_backend/internals/features/audit/service"
	dto "tuttiud_backend/internals/features/organizations/dto"
	model "tuttiud_backend/internals/features/organizations/model"
	helper "tuttiud_backend/internals/helpers"

	"tuttiud_backend/internals/constants"
)

type OrgController struct {
	DB *gorm.DB
}

func NewOrgController(db *gorm.DB) *OrgController {
	return &OrgController{DB: db}
}

// GET /api/u/me — the caller's org and role, for client bootstrap.
func (h *OrgController) Me(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)

	var org model.OrgModel
	if err := h.DB.Where("org_id = ?", orgID).First(&org).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "org_not_found")
		}
		return helper.JsonDBError(c, err)
	}

	return helper.JsonOK(c, "", fiber.Map{
		"org":     dto.OrgFromModel(&org),
		"user_id": userID,
		"role":    helper.GetRole(c),
	})
}

// PATCH /api/o/org — rename; slug is immutable once set.
func (h *OrgController) Update(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	var req struct {
		OrgName *string `json:"org_name,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}

	var org model.OrgModel
	if err := h.DB.Where("org_id = ?", orgID).First(&org).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "org_not_found")
		}
		return helper.JsonDBError(c, err)
	}

	if req.OrgName != nil {
		name := strings.TrimSpace(*req.OrgName)
		if name == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "missing_name")
		}
		org.OrgName = name
	}
	if err := h.DB.Save(&org).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "", dto.OrgFromModel(&org))
}

// GET /api/o/members
func (h *OrgController) ListMembers(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	var rows []model.OrgMembershipModel
	if err := h.DB.
		Where("membership_org_id = ?", orgID).
		Order("membership_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "", dto.MembershipsFromModels(rows))
}

// PATCH /api/o/members/:id — role change. The last owner cannot be
// demoted, otherwise the org would lock itself out.
func (h *OrgController) UpdateMemberRole(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	callerID, _ := helper.GetUserID(c)
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_membership_id")
	}

	var req struct {
		MembershipRole string `json:"membership_role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	role := strings.ToLower(strings.TrimSpace(req.MembershipRole))
	switch role {
	case constants.RoleMember, constants.RoleAdmin, constants.RoleOwner:
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_role")
	}

	var row model.OrgMembershipModel
	if err := h.DB.
		Where("membership_org_id = ? AND membership_id = ?", orgID, id).
		First(&row).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "invalid_membership_id")
		}
		return helper.JsonDBError(c, err)
	}

	if row.MembershipRole == constants.RoleOwner && role != constants.RoleOwner {
		var owners int64
		if err := h.DB.Model(&model.OrgMembershipModel{}).
			Where("membership_org_id = ? AND membership_role = ?", orgID, constants.RoleOwner).
			Count(&owners).Error; err != nil {
			return helper.JsonDBError(c, err)
		}
		if owners <= 1 {
			return helper.JsonError(c, fiber.StatusConflict, "last_owner")
		}
	}

	row.MembershipRole = role
	if err := h.DB.Save(&row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	auditService.Record(h.DB, orgID, callerID, "membership.role", "org_membership", &row.MembershipID,
		map[string]interface{}{"role": role})
	return helper.JsonUpdated(c, "role updated", dto.MembershipFromModel(&row))
}

// DELETE /api/o/members/:id
func (h *OrgController) RemoveMember(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	callerID, _ := helper.GetUserID(c)
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_membership_id")
	}

	var row model.OrgMembershipModel
	if err := h.DB.
		Where("membership_org_id = ? AND membership_id = ?", orgID, id).
		First(&row).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "invalid_membership_id")
		}
		return helper.JsonDBError(c, err)
	}
	if row.MembershipRole == constants.RoleOwner {
		var owners int64
		if err := h.DB.Model(&model.OrgMembershipModel{}).
			Where("membership_org_id = ? AND membership_role = ?", orgID, constants.RoleOwner).
			Count(&owners).Error; err != nil {
			return helper.JsonDBError(c, err)
		}
		if owners <= 1 {
			return helper.JsonError(c, fiber.StatusConflict, "last_owner")
		}
	}

	if err := h.DB.Delete(&row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	auditService.Record(h.DB, orgID, callerID, "membership.remove", "org_membership", &row.MembershipID, nil)
	return helper.JsonDeleted(c, "member removed", dto.MembershipFromModel(&row))
}
