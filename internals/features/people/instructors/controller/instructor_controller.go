package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "tuttiud_backend/internals/features/people/instructors/dto"
	model "tuttiud_backend/internals/features/people/instructors/model"
	sessionModel "tuttiud_backend/internals/features/sessions/model"
	helper "tuttiud_backend/internals/helpers"
)

type InstructorController struct {
	DB *gorm.DB
}

func NewInstructorController(db *gorm.DB) *InstructorController {
	return &InstructorController{DB: db}
}

// POST /api/a/instructors
func (h *InstructorController) Create(c *fiber.Ctx) error {
	var req dto.InstructorCreateReq
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
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "instructor_exists")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "instructor created", dto.FromModel(m))
}

// GET /api/u/instructors
func (h *InstructorController) List(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	q := h.DB.Model(&model.InstructorModel{}).
		Where("instructor_org_id = ?", orgID)
	if c.Query("include_inactive") != "true" {
		q = q.Where("instructor_is_active = TRUE")
	}

	var rows []model.InstructorModel
	if err := q.Order("instructor_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "", dto.FromModels(rows))
}

// GET /api/u/instructors/:id
func (h *InstructorController) GetByID(c *fiber.Ctx) error {
	row, errResp := h.load(c)
	if row == nil {
		return errResp
	}
	return helper.JsonOK(c, "", dto.FromModel(row))
}

// PATCH /api/a/instructors/:id
func (h *InstructorController) Update(c *fiber.Ctx) error {
	row, errResp := h.load(c)
	if row == nil {
		return errResp
	}

	var req dto.InstructorUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	if code := req.Apply(row); code != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, code)
	}
	if err := h.DB.Save(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "", dto.FromModel(row))
}

// DELETE /api/a/instructors/:id
// An instructor with attributed sessions is deactivated, not removed,
// so old reports keep a valid reference.
func (h *InstructorController) Delete(c *fiber.Ctx) error {
	row, errResp := h.load(c)
	if row == nil {
		return errResp
	}

	var sessions int64
	if err := h.DB.Model(&sessionModel.SessionRecordModel{}).
		Where("session_instructor_id = ?", row.InstructorID).
		Count(&sessions).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if sessions > 0 {
		row.InstructorIsActive = false
		if err := h.DB.Save(row).Error; err != nil {
			return helper.JsonDBError(c, err)
		}
		return helper.JsonUpdated(c, "instructor deactivated", dto.FromModel(row))
	}

	if err := h.DB.Delete(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "", dto.FromModel(row))
}

func (h *InstructorController) load(c *fiber.Ctx) (*model.InstructorModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "invalid_instructor_id")
	}
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	var row model.InstructorModel
	if err := h.DB.
		Where("instructor_org_id = ? AND instructor_id = ?", orgID, id).
		First(&row).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "invalid_instructor_id")
		}
		return nil, helper.JsonDBError(c, err)
	}
	return &row, nil
}
