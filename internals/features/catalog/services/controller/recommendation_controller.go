package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "tuttiud_backend/internals/features/catalog/services/dto"
	model "tuttiud_backend/internals/features/catalog/services/model"
	catalogService "tuttiud_backend/internals/features/catalog/services/service"
	studentModel "tuttiud_backend/internals/features/people/students/model"
	sessionModel "tuttiud_backend/internals/features/sessions/model"
	helper "tuttiud_backend/internals/helpers"
	"tuttiud_backend/internals/helpers/metadata"

	"tuttiud_backend/internals/constants"
)

// RecommendationController resolves which service and template apply
// to a session about to be written, plus the most recent prior answers
// for UI pre-fill. Read-only.
type RecommendationController struct {
	DB *gorm.DB
}

func NewRecommendationController(db *gorm.DB) *RecommendationController {
	return &RecommendationController{DB: db}
}

type recommendationResp struct {
	Service          *dto.ServiceResp       `json:"service,omitempty"`
	Template         *dto.TemplateResp      `json:"template,omitempty"`
	InheritedContent map[string]interface{} `json:"inherited_content,omitempty"`
}

// GET /api/u/session-recommendations?student_id=&service_id=&template_id=&service_context=
func (h *RecommendationController) Get(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)
	role := helper.GetRole(c)

	studentIDStr := c.Query("student_id")
	if studentIDStr == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_student_id")
	}
	studentID, err := uuid.Parse(studentIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_student_id")
	}

	var student studentModel.StudentModel
	if err := h.DB.
		Where("student_org_id = ? AND student_id = ?", orgID, studentID).
		First(&student).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "invalid_student_id")
		}
		return helper.JsonDBError(c, err)
	}
	if !constants.RoleAtLeast(role, constants.RoleAdmin) {
		if student.StudentAssignedInstructorID == nil || *student.StudentAssignedInstructorID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "student_not_assigned_to_user")
		}
	}

	explicitService := queryUUID(c, "service_id")
	explicitTemplate := queryUUID(c, "template_id")
	var legacyName *string
	if v := c.Query("service_context"); v != "" {
		legacyName = &v
	}

	var active []model.ServiceModel
	if err := h.DB.
		Where("service_org_id = ? AND service_is_active = TRUE", orgID).
		Find(&active).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	resolved := catalogService.ResolveService(
		explicitService,
		student.StudentDefaultServiceID,
		student.StudentTags,
		active,
		legacyName,
	)
	if explicitService != nil && resolved == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_service_id")
	}

	resp := recommendationResp{}
	if resolved == nil {
		return helper.JsonOK(c, "no service resolved", resp)
	}
	svcResp := dto.ServiceFromModel(resolved)
	resp.Service = &svcResp

	var templates []model.ReportTemplateModel
	if err := h.DB.
		Where("template_org_id = ? AND template_service_id = ?", orgID, resolved.ServiceID).
		Find(&templates).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var prior int64
	if err := h.DB.Model(&sessionModel.SessionRecordModel{}).
		Where("session_org_id = ? AND session_student_id = ? AND session_service_id = ? AND session_deleted = FALSE",
			orgID, student.StudentID, resolved.ServiceID).
		Count(&prior).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	tpl := catalogService.ResolveTemplate(explicitTemplate, templates, prior > 0)
	if explicitTemplate != nil && tpl == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_template_id")
	}
	if tpl == nil {
		return helper.JsonOK(c, "no template resolved", resp)
	}
	tplResp := dto.TemplateFromModel(tpl)
	resp.Template = &tplResp

	// inheritance: latest prior session on the same template, answers
	// returned for pre-fill only
	var last sessionModel.SessionRecordModel
	err = h.DB.
		Where("session_org_id = ? AND session_student_id = ? AND session_template_id = ? AND session_deleted = FALSE",
			orgID, student.StudentID, tpl.TemplateID).
		Order("session_date DESC, session_created_at DESC").
		First(&last).Error
	if err == nil {
		resp.InheritedContent = metadata.Decode(last.SessionContent)
	} else if !helper.IsNotFound(err) {
		return helper.JsonDBError(c, err)
	}

	return helper.JsonOK(c, "", resp)
}

func queryUUID(c *fiber.Ctx, key string) *uuid.UUID {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}
