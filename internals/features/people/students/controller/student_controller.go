package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "tuttiud_backend/internals/features/audit/service"
	dto "tuttiud_backend/internals/features/people/students/dto"
	model "tuttiud_backend/internals/features/people/students/model"
	service "tuttiud_backend/internals/features/people/students/service"
	helper "tuttiud_backend/internals/helpers"

	"tuttiud_backend/internals/constants"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

// POST /api/a/students
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.StudentCreateReq
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	req.Normalize()

	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)

	if code := req.Validate(); code != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, code)
	}

	m := req.ToModel(orgID)

	// pre-check so the conflict can carry the colliding student
	var lookupErr error
	adm, code := service.AdmitNationalID(req.StudentNationalID, func(coerced string) *model.StudentModel {
		var ex model.StudentModel
		lookupErr = h.DB.
			Where("student_org_id = ? AND student_national_id = ?", orgID, coerced).
			First(&ex).Error
		if lookupErr == nil {
			return &ex
		}
		return nil
	})
	if lookupErr != nil && !helper.IsNotFound(lookupErr) {
		return helper.JsonDBError(c, lookupErr)
	}
	switch code {
	case "":
	case service.ErrNationalIDExists:
		return helper.JsonErrorWithData(c, fiber.StatusConflict, code, dto.FromModel(adm.Existing))
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, code)
	}

	if err := h.DB.Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "national_id_exists")
		}
		return helper.JsonDBError(c, err)
	}

	auditService.Record(h.DB, orgID, userID, "student_create", "student", &m.StudentID, nil)
	return helper.JsonCreated(c, "student created", dto.FromModel(m))
}

// GET /api/u/students
// Members only see students assigned to them; admins see the org.
func (h *StudentController) List(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)
	role := helper.GetRole(c)

	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.StudentModel{}).
		Where("student_org_id = ?", orgID)
	if !constants.RoleAtLeast(role, constants.RoleAdmin) {
		q = q.Where("student_assigned_instructor_id = ?", userID)
	}
	if c.Query("include_inactive") != "true" {
		q = q.Where("student_is_active = TRUE")
	}
	if tag := c.Query("tag"); tag != "" {
		q = q.Where("? = ANY(student_tags)", tag)
	}
	if c.Query("needs_intake_approval") == "true" {
		q = q.Where("student_needs_intake_approval = TRUE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.StudentModel
	if err := q.Order("student_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /api/u/students/:id
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	row, errResp := h.loadVisible(c)
	if row == nil {
		return errResp
	}
	return helper.JsonOK(c, "", dto.FromModel(row))
}

// PATCH /api/a/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	row, errResp := h.loadVisible(c)
	if row == nil {
		return errResp
	}

	var req dto.StudentUpdateReq
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

// POST /api/a/students/:id/approve-intake
// Clears the approval flag set by the intake webhook.
func (h *StudentController) ApproveIntake(c *fiber.Ctx) error {
	row, errResp := h.loadVisible(c)
	if row == nil {
		return errResp
	}
	if !row.StudentNeedsIntakeApproval {
		return helper.JsonOK(c, "already approved", dto.FromModel(row))
	}
	row.StudentNeedsIntakeApproval = false
	if err := h.DB.Save(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	orgID, _ := helper.GetOrgID(c)
	userID, _ := helper.GetUserID(c)
	auditService.Record(h.DB, orgID, userID, "student_intake_approve", "student", &row.StudentID, nil)
	return helper.JsonUpdated(c, "intake approved", dto.FromModel(row))
}

// DELETE /api/a/students/:id (soft)
func (h *StudentController) Delete(c *fiber.Ctx) error {
	row, errResp := h.loadVisible(c)
	if row == nil {
		return errResp
	}
	if err := h.DB.Delete(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "", dto.FromModel(row))
}

func (h *StudentController) loadVisible(c *fiber.Ctx) (*model.StudentModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "invalid_student_id")
	}
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)
	role := helper.GetRole(c)

	var row model.StudentModel
	if err := h.DB.
		Where("student_org_id = ? AND student_id = ?", orgID, id).
		First(&row).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "invalid_student_id")
		}
		return nil, helper.JsonDBError(c, err)
	}
	if !constants.RoleAtLeast(role, constants.RoleAdmin) {
		if row.StudentAssignedInstructorID == nil || *row.StudentAssignedInstructorID != userID {
			return nil, helper.JsonError(c, fiber.StatusForbidden, "student_not_assigned_to_user")
		}
	}
	return &row, nil
}
