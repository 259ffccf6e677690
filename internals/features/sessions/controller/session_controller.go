package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "tuttiud_backend/internals/features/audit/service"
	catalogModel "tuttiud_backend/internals/features/catalog/services/model"
	catalogService "tuttiud_backend/internals/features/catalog/services/service"
	instructorModel "tuttiud_backend/internals/features/people/instructors/model"
	studentModel "tuttiud_backend/internals/features/people/students/model"
	dto "tuttiud_backend/internals/features/sessions/dto"
	model "tuttiud_backend/internals/features/sessions/model"
	service "tuttiud_backend/internals/features/sessions/service"
	helper "tuttiud_backend/internals/helpers"
	"tuttiud_backend/internals/helpers/metadata"

	"tuttiud_backend/internals/constants"
)

type SessionController struct {
	DB *gorm.DB
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db}
}

/* =========================
   Lookups
   ========================= */

func (h *SessionController) instructorExists(orgID, id uuid.UUID, activeOnly bool) (bool, error) {
	q := h.DB.Model(&instructorModel.InstructorModel{}).
		Where("instructor_org_id = ? AND instructor_id = ?", orgID, id)
	if activeOnly {
		q = q.Where("instructor_is_active = TRUE")
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (h *SessionController) loadStudent(orgID, id uuid.UUID) (*studentModel.StudentModel, error) {
	var st studentModel.StudentModel
	err := h.DB.
		Where("student_org_id = ? AND student_id = ?", orgID, id).
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

/* =========================
   POST /api/u/sessions
   ========================= */

// Create handles every session write: normal reports, loose reports
// (no student) and resubmissions of rejected loose reports.
func (h *SessionController) Create(c *fiber.Ctx) error {
	var req dto.SessionCreateReq
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	req.Normalize()

	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	role := helper.GetRole(c)

	if code := req.Validate(); code != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, code)
	}

	// target student, when given
	var student *studentModel.StudentModel
	if req.SessionStudentID != nil {
		student, err = h.loadStudent(orgID, *req.SessionStudentID)
		if err != nil {
			if helper.IsNotFound(err) {
				return helper.JsonError(c, fiber.StatusBadRequest, service.ErrInvalidStudentID)
			}
			return helper.JsonDBError(c, err)
		}
	}

	// explicit instructor must exist before it can be honored
	if req.SessionInstructorID != nil {
		found, err := h.instructorExists(orgID, *req.SessionInstructorID, true)
		if err != nil {
			return helper.JsonDBError(c, err)
		}
		if !found {
			return helper.JsonError(c, fiber.StatusBadRequest, service.ErrInvalidInstructorID)
		}
	}

	callerIsInstructor, err := h.instructorExists(orgID, userID, false)
	if err != nil {
		return helper.JsonDBError(c, err)
	}

	facts := service.AttributionFacts{
		Role:               role,
		CallerID:           userID,
		ExplicitID:         req.SessionInstructorID,
		CallerIsInstructor: callerIsInstructor,
		IsLoose:            student == nil,
	}
	if student != nil {
		facts.AssignedInstructor = student.StudentAssignedInstructorID
	}
	instructorID, code := service.ResolveInstructor(facts)
	if code != "" {
		status := fiber.StatusBadRequest
		if code == service.ErrStudentNotAssignedToUser {
			status = fiber.StatusForbidden
		}
		return helper.JsonError(c, status, code)
	}

	row := req.ToModel(orgID, instructorID)

	// service/template auto-selection for student sessions
	if student != nil {
		if code := h.autoSelect(row, student, &req); code != "" {
			return helper.JsonError(c, fiber.StatusBadRequest, code)
		}
	}

	if err := h.DB.Create(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	// best-effort: annotate the rejected original of a resubmission
	if originalID := req.ResubmittedFrom(); originalID != nil {
		h.annotateResubmission(orgID, *originalID, row.SessionID, instructorID)
	}

	auditService.Record(h.DB, orgID, userID, "session_create", "session", &row.SessionID, nil)
	return helper.JsonCreated(c, "session recorded", dto.FromModel(row))
}

// autoSelect resolves service, template and service context onto the
// row; explicit ids are validated, the rest is best-match.
func (h *SessionController) autoSelect(row *model.SessionRecordModel, student *studentModel.StudentModel, req *dto.SessionCreateReq) string {
	var active []catalogModel.ServiceModel
	if err := h.DB.
		Where("service_org_id = ? AND service_is_active = TRUE", row.SessionOrgID).
		Find(&active).Error; err != nil {
		log.Printf("[WARN] service auto-selection skipped: %v", err)
		return ""
	}

	resolved := catalogService.ResolveService(
		req.SessionServiceID,
		student.StudentDefaultServiceID,
		student.StudentTags,
		active,
		req.SessionServiceContext,
	)
	if req.SessionServiceID != nil && resolved == nil {
		return "invalid_service_id"
	}
	if resolved == nil {
		return ""
	}
	row.SessionServiceID = &resolved.ServiceID
	row.SessionServiceContext = service.ResolveServiceContext(req.SessionServiceContext, &resolved.ServiceName)

	var templates []catalogModel.ReportTemplateModel
	if err := h.DB.
		Where("template_org_id = ? AND template_service_id = ?", row.SessionOrgID, resolved.ServiceID).
		Find(&templates).Error; err != nil {
		log.Printf("[WARN] template auto-selection skipped: %v", err)
		return ""
	}

	var prior int64
	if err := h.DB.Model(&model.SessionRecordModel{}).
		Where("session_org_id = ? AND session_student_id = ? AND session_service_id = ? AND session_deleted = FALSE",
			row.SessionOrgID, student.StudentID, resolved.ServiceID).
		Count(&prior).Error; err != nil {
		log.Printf("[WARN] prior-session count failed: %v", err)
	}

	tpl := catalogService.ResolveTemplate(req.SessionTemplateID, templates, prior > 0)
	if req.SessionTemplateID != nil && tpl == nil {
		return "invalid_template_id"
	}
	if tpl != nil {
		row.SessionTemplateID = &tpl.TemplateID
	}
	return ""
}

// annotateResubmission stamps rejection.resubmitted_at/resubmitted_to
// on the rejected original. Not transactional with the insert: any
// failure is logged, never surfaced.
func (h *SessionController) annotateResubmission(orgID, originalID, newID, instructorID uuid.UUID) {
	var original model.SessionRecordModel
	err := h.DB.
		Where("session_org_id = ? AND session_id = ?", orgID, originalID).
		First(&original).Error
	if err != nil {
		log.Printf("[WARN] resubmission annotate: original %s not loaded: %v", originalID, err)
		return
	}
	if !original.SessionDeleted || original.SessionInstructorID != instructorID {
		log.Printf("[WARN] resubmission annotate: original %s not eligible", originalID)
		return
	}
	meta := metadata.Decode(original.SessionMetadata)
	if !metadata.HasRejection(meta) {
		log.Printf("[WARN] resubmission annotate: original %s has no rejection block", originalID)
		return
	}
	patch := map[string]interface{}{
		metadata.KeyRejection: map[string]interface{}{
			"resubmitted_at": time.Now().UTC().Format(time.RFC3339),
			"resubmitted_to": newID.String(),
		},
	}
	err = h.DB.Model(&model.SessionRecordModel{}).
		Where("session_id = ?", originalID).
		Update("session_metadata", metadata.MergeColumn(original.SessionMetadata, patch)).Error
	if err != nil {
		log.Printf("[WARN] resubmission annotate: update failed for %s: %v", originalID, err)
	}
}

/* =========================
   GET /api/u/sessions
   ========================= */

// List returns the caller's sessions; admins see the whole org and may
// filter by student or loose-only.
func (h *SessionController) List(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)
	role := helper.GetRole(c)

	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.SessionRecordModel{}).
		Where("session_org_id = ?", orgID)

	if !constants.RoleAtLeast(role, constants.RoleAdmin) {
		q = q.Where("session_instructor_id = ?", userID)
	} else if s := c.Query("student_id"); s != "" {
		sid, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, service.ErrInvalidStudentID)
		}
		q = q.Where("session_student_id = ?", sid)
	}
	if c.Query("include_deleted") != "true" {
		q = q.Where("session_deleted = FALSE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.SessionRecordModel
	if err := q.Order("session_date DESC, session_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	return helper.JsonList(c, "", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

/* =========================
   GET /api/u/sessions/:id
   ========================= */

func (h *SessionController) GetByID(c *fiber.Ctx) error {
	row, errResp := h.loadOwned(c)
	if row == nil {
		return errResp
	}
	return helper.JsonOK(c, "", dto.FromModel(row))
}

/* =========================
   PATCH /api/u/sessions/:id
   ========================= */

func (h *SessionController) Update(c *fiber.Ctx) error {
	row, errResp := h.loadOwned(c)
	if row == nil {
		return errResp
	}
	if row.SessionDeleted {
		return helper.JsonError(c, fiber.StatusConflict, service.ErrSessionRejected)
	}

	var req dto.SessionUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	if code := req.Validate(); code != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, code)
	}

	req.Apply(row)
	if err := h.DB.Save(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "", dto.FromModel(row))
}

/* =========================
   DELETE /api/u/sessions/:id
   ========================= */

func (h *SessionController) Delete(c *fiber.Ctx) error {
	row, errResp := h.loadOwned(c)
	if row == nil {
		return errResp
	}
	if row.SessionDeleted {
		return helper.JsonDeleted(c, "", dto.FromModel(row))
	}
	now := time.Now().UTC()
	row.SessionDeleted = true
	row.SessionDeletedAt = &now
	if err := h.DB.Save(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "", dto.FromModel(row))
}

// loadOwned fetches the :id session and enforces that a member only
// touches rows attributed to themselves. Returns (nil, response) on
// failure.
func (h *SessionController) loadOwned(c *fiber.Ctx) (*model.SessionRecordModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "invalid_session_id")
	}
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)
	role := helper.GetRole(c)

	var row model.SessionRecordModel
	if err := h.DB.
		Where("session_org_id = ? AND session_id = ?", orgID, id).
		First(&row).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, service.ErrSessionNotFound)
		}
		return nil, helper.JsonDBError(c, err)
	}
	if !constants.RoleAtLeast(role, constants.RoleAdmin) && row.SessionInstructorID != userID {
		return nil, helper.JsonError(c, fiber.StatusForbidden, "not_session_owner")
	}
	return &row, nil
}
