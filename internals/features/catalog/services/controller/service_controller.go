package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "tuttiud_backend/internals/features/catalog/services/dto"
	model "tuttiud_backend/internals/features/catalog/services/model"
	helper "tuttiud_backend/internals/helpers"
	"tuttiud_backend/internals/helpers/metadata"
)

type ServiceController struct {
	DB *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db}
}

// POST /api/a/services
// Each new service gets its three system templates (INTAKE, ONGOING,
// SUMMARY) provisioned alongside it.
func (h *ServiceController) Create(c *fiber.Ctx) error {
	var req dto.ServiceCreateReq
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

	m := req.ToModel(orgID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	h.provisionSystemTemplates(m)
	return helper.JsonCreated(c, "service created", dto.ServiceFromModel(m))
}

// provisionSystemTemplates is best-effort: a failed template insert is
// logged and the service creation still succeeds (templates can be
// added by hand later).
func (h *ServiceController) provisionSystemTemplates(svc *model.ServiceModel) {
	for _, sysType := range []string{
		model.TemplateTypeIntake,
		model.TemplateTypeOngoing,
		model.TemplateTypeSummary,
	} {
		tpl := model.ReportTemplateModel{
			TemplateOrgID:      svc.ServiceOrgID,
			TemplateServiceID:  svc.ServiceID,
			TemplateName:       svc.ServiceName + " — " + sysType,
			TemplateSystemType: sysType,
			TemplateStructure:  metadata.Encode(map[string]interface{}{"questions": []interface{}{}}),
			TemplateIsActive:   true,
		}
		if err := h.DB.Create(&tpl).Error; err != nil {
			log.Printf("[WARN] system template %s for service %s not created: %v",
				sysType, svc.ServiceID, err)
		}
	}
}

// GET /api/u/services
func (h *ServiceController) List(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	q := h.DB.Model(&model.ServiceModel{}).
		Where("service_org_id = ?", orgID)
	if c.Query("include_inactive") != "true" {
		q = q.Where("service_is_active = TRUE")
	}

	var rows []model.ServiceModel
	if err := q.Order("service_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "", dto.ServicesFromModels(rows))
}

// PATCH /api/a/services/:id
func (h *ServiceController) Update(c *fiber.Ctx) error {
	row, errResp := h.load(c)
	if row == nil {
		return errResp
	}

	var req dto.ServiceUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	if code := req.Apply(row); code != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, code)
	}
	if err := h.DB.Save(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "", dto.ServiceFromModel(row))
}

// DELETE /api/a/services/:id (soft)
func (h *ServiceController) Delete(c *fiber.Ctx) error {
	row, errResp := h.load(c)
	if row == nil {
		return errResp
	}
	if err := h.DB.Delete(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "", dto.ServiceFromModel(row))
}

func (h *ServiceController) load(c *fiber.Ctx) (*model.ServiceModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "invalid_service_id")
	}
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	var row model.ServiceModel
	if err := h.DB.
		Where("service_org_id = ? AND service_id = ?", orgID, id).
		First(&row).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "invalid_service_id")
		}
		return nil, helper.JsonDBError(c, err)
	}
	return &row, nil
}
