package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "tuttiud_backend/internals/features/audit/service"
	catalogModel "tuttiud_backend/internals/features/catalog/services/model"
	instructorModel "tuttiud_backend/internals/features/people/instructors/model"
	studentDto "tuttiud_backend/internals/features/people/students/dto"
	studentModel "tuttiud_backend/internals/features/people/students/model"
	studentService "tuttiud_backend/internals/features/people/students/service"
	dto "tuttiud_backend/internals/features/sessions/dto"
	model "tuttiud_backend/internals/features/sessions/model"
	service "tuttiud_backend/internals/features/sessions/service"
	helper "tuttiud_backend/internals/helpers"
	"tuttiud_backend/internals/helpers/coerce"
	"tuttiud_backend/internals/helpers/metadata"
)

// LooseSessionController triages loose (unassigned) session reports:
// assign to an existing student, create a student and assign, or
// reject with a reason. Admin-only.
type LooseSessionController struct {
	DB *gorm.DB
}

func NewLooseSessionController(db *gorm.DB) *LooseSessionController {
	return &LooseSessionController{DB: db}
}

/* =========================
   GET /api/a/loose-sessions
   ========================= */

func (h *LooseSessionController) ListPending(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.SessionRecordModel{}).
		Where("session_org_id = ? AND session_student_id IS NULL", orgID)
	if c.Query("include_rejected") != "true" {
		q = q.Where("session_deleted = FALSE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.SessionRecordModel
	if err := q.Order("session_created_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

/* =========================
   POST /api/a/loose-sessions/:id/assign
   ========================= */

func (h *LooseSessionController) AssignExisting(c *fiber.Ctx) error {
	orgID, userID, row, errResp := h.loadPending(c)
	if row == nil {
		return errResp
	}

	var req dto.LooseAssignReq
	if err := c.BodyParser(&req); err != nil || req.StudentID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, service.ErrInvalidStudentID)
	}

	var student studentModel.StudentModel
	if err := h.DB.
		Where("student_org_id = ? AND student_id = ?", orgID, req.StudentID).
		First(&student).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, service.ErrInvalidStudentID)
		}
		return helper.JsonDBError(c, err)
	}

	if err := h.applyAssignment(row, &student, userID); err != nil {
		return helper.JsonDBError(c, err)
	}

	auditService.Record(h.DB, orgID, userID, "loose_assign", "session", &row.SessionID,
		map[string]interface{}{"student_id": student.StudentID.String()})
	return helper.JsonUpdated(c, "report assigned", dto.FromModel(row))
}

/* =========================
   POST /api/a/loose-sessions/:id/create-and-assign
   ========================= */

func (h *LooseSessionController) CreateAndAssign(c *fiber.Ctx) error {
	orgID, userID, row, errResp := h.loadPending(c)
	if row == nil {
		return errResp
	}

	var req dto.LooseCreateAssignReq
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	req.Normalize()

	if req.StudentName == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing_name")
	}
	var phone *string
	if req.StudentPhone != nil {
		p := coerce.Phone(*req.StudentPhone)
		if !p.Valid {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid_phone")
		}
		phone = p.Value
	}

	if req.AssignedInstructorID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, service.ErrInvalidInstructorID)
	}
	var active int64
	if err := h.DB.Model(&instructorModel.InstructorModel{}).
		Where("instructor_org_id = ? AND instructor_id = ? AND instructor_is_active = TRUE",
			orgID, req.AssignedInstructorID).
		Count(&active).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if active == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, service.ErrInvalidInstructorID)
	}

	// national-id uniqueness pre-check; the conflict response carries
	// the colliding student so the UI can offer assign-existing
	var lookupErr error
	adm, code := studentService.AdmitNationalID(req.StudentNationalID, func(coerced string) *studentModel.StudentModel {
		var ex studentModel.StudentModel
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
	case studentService.ErrNationalIDExists:
		return helper.JsonErrorWithData(c, fiber.StatusConflict, code, studentDto.FromModel(adm.Existing))
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, code)
	}

	student := studentModel.StudentModel{
		StudentOrgID:                orgID,
		StudentName:                 req.StudentName,
		StudentNationalID:           adm.NationalID,
		StudentPhone:                phone,
		StudentAssignedInstructorID: &req.AssignedInstructorID,
		StudentDefaultServiceID:     req.DefaultServiceID,
	}
	if err := h.DB.Create(&student).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			// lost the race to a concurrent create
			return helper.JsonError(c, fiber.StatusConflict, service.ErrNationalIDExists)
		}
		return helper.JsonDBError(c, err)
	}

	// The student row is committed at this point. The assignment below
	// is an independent write: if it fails the partial state is
	// surfaced, not rolled back.
	if err := h.applyAssignment(row, &student, userID); err != nil {
		log.Printf("[ERROR] create-and-assign: student %s created but assignment of %s failed: %v",
			student.StudentID, row.SessionID, err)
		return helper.JsonDBError(c, err)
	}

	auditService.Record(h.DB, orgID, userID, "loose_create_assign", "session", &row.SessionID,
		map[string]interface{}{"student_id": student.StudentID.String()})
	return helper.JsonCreated(c, "student created and report assigned", fiber.Map{
		"student": studentDto.FromModel(&student),
		"session": dto.FromModel(row),
	})
}

/* =========================
   POST /api/a/loose-sessions/:id/reject
   ========================= */

func (h *LooseSessionController) Reject(c *fiber.Ctx) error {
	orgID, userID, row, errResp := h.loadPending(c)
	if row == nil {
		return errResp
	}

	var req dto.LooseRejectReq
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	req.Normalize()
	if req.Reason == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, service.ErrMissingReason)
	}

	now := time.Now().UTC()
	row.SessionDeleted = true
	row.SessionDeletedAt = &now
	row.SessionMetadata = metadata.MergeColumn(row.SessionMetadata, metadata.RejectionBlock(metadata.Rejection{
		Reason:     req.Reason,
		RejectedBy: userID,
		RejectedAt: now,
	}))

	if err := h.DB.Save(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	auditService.Record(h.DB, orgID, userID, "loose_reject", "session", &row.SessionID,
		map[string]interface{}{"reason": req.Reason})
	return helper.JsonUpdated(c, "report rejected", dto.FromModel(row))
}

/* =========================
   shared bits
   ========================= */

// loadPending loads the :id report and verifies it is still pending.
// Idempotence contract: a second assign/reject on the same report gets
// session_already_assigned / session_rejected and no write happens.
func (h *LooseSessionController) loadPending(c *fiber.Ctx) (uuid.UUID, uuid.UUID, *model.SessionRecordModel, error) {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)

	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return orgID, userID, nil, helper.JsonError(c, fiber.StatusBadRequest, "invalid_session_id")
	}

	var row model.SessionRecordModel
	if err := h.DB.
		Where("session_org_id = ? AND session_id = ?", orgID, id).
		First(&row).Error; err != nil {
		if helper.IsNotFound(err) {
			return orgID, userID, nil, helper.JsonError(c, fiber.StatusNotFound, service.ErrSessionNotFound)
		}
		return orgID, userID, nil, helper.JsonDBError(c, err)
	}
	if code := service.CheckResolvable(&row); code != "" {
		return orgID, userID, nil, helper.JsonError(c, fiber.StatusConflict, code)
	}
	return orgID, userID, &row, nil
}

// applyAssignment flips a pending report to assigned: sets the student,
// recomputes the service context (the report's own value wins over the
// student default) and merges the assignment block without touching
// unassigned_details. No row lock: concurrent assigns race and the
// last commit wins, which is accepted behavior.
func (h *LooseSessionController) applyAssignment(row *model.SessionRecordModel, student *studentModel.StudentModel, by uuid.UUID) error {
	var defaultName *string
	if student.StudentDefaultServiceID != nil {
		var svc catalogModel.ServiceModel
		if err := h.DB.
			Where("service_id = ?", *student.StudentDefaultServiceID).
			First(&svc).Error; err == nil {
			defaultName = &svc.ServiceName
		}
	}

	row.SessionStudentID = &student.StudentID
	row.SessionServiceContext = service.ResolveServiceContext(row.SessionServiceContext, defaultName)
	row.SessionMetadata = metadata.MergeColumn(row.SessionMetadata, metadata.AssignmentBlock(metadata.Assignment{
		StudentID:  student.StudentID,
		AssignedBy: by,
		AssignedAt: time.Now().UTC(),
	}))
	return h.DB.Save(row).Error
}
