package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "tuttiud_backend/internals/features/catalog/services/dto"
	model "tuttiud_backend/internals/features/catalog/services/model"
	helper "tuttiud_backend/internals/helpers"
	"tuttiud_backend/internals/helpers/metadata"
)

type TemplateController struct {
	DB *gorm.DB
}

func NewTemplateController(db *gorm.DB) *TemplateController {
	return &TemplateController{DB: db}
}

// POST /api/a/templates
func (h *TemplateController) Create(c *fiber.Ctx) error {
	var req dto.TemplateCreateReq
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	req.Normalize()

	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	if code := req.Validate(); code != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, code)
	}

	// the target service must exist in this org
	var n int64
	if err := h.DB.Model(&model.ServiceModel{}).
		Where("service_org_id = ? AND service_id = ?", orgID, req.TemplateServiceID).
		Count(&n).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_service_id")
	}

	m := req.ToModel(orgID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "template created", dto.TemplateFromModel(m))
}

// GET /api/u/templates?service_id=
func (h *TemplateController) List(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	q := h.DB.Model(&model.ReportTemplateModel{}).
		Where("template_org_id = ?", orgID)
	if s := c.Query("service_id"); s != "" {
		q = q.Where("template_service_id = ?", s)
	}
	if c.Query("include_inactive") != "true" {
		q = q.Where("template_is_active = TRUE")
	}

	var rows []model.ReportTemplateModel
	if err := q.Order("template_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "", dto.TemplatesFromModels(rows))
}

// PATCH /api/a/templates/:id — structure and name only; the system
// type of a provisioned template is fixed.
func (h *TemplateController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_template_id")
	}
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	var row model.ReportTemplateModel
	if err := h.DB.
		Where("template_org_id = ? AND template_id = ?", orgID, id).
		First(&row).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "invalid_template_id")
		}
		return helper.JsonDBError(c, err)
	}

	var req struct {
		TemplateName      *string                `json:"template_name,omitempty"`
		TemplateStructure map[string]interface{} `json:"template_structure,omitempty"`
		TemplateIsActive  *bool                  `json:"template_is_active,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	if req.TemplateName != nil && *req.TemplateName != "" {
		row.TemplateName = *req.TemplateName
	}
	if req.TemplateStructure != nil {
		row.TemplateStructure = metadata.Encode(req.TemplateStructure)
	}
	if req.TemplateIsActive != nil {
		row.TemplateIsActive = *req.TemplateIsActive
	}
	if err := h.DB.Save(&row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "", dto.TemplateFromModel(&row))
}
