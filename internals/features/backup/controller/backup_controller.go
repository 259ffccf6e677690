package controller

import (
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	auditService "tuttiud_backend/internals/features/audit/service"
	backupService "tuttiud_backend/internals/features/backup/service"
	serviceModel "tuttiud_backend/internals/features/catalog/services/model"
	orgModel "tuttiud_backend/internals/features/organizations/model"
	instructorModel "tuttiud_backend/internals/features/people/instructors/model"
	studentModel "tuttiud_backend/internals/features/people/students/model"
	sessionModel "tuttiud_backend/internals/features/sessions/model"
	helper "tuttiud_backend/internals/helpers"
)

const snapshotVersion = 1

type BackupController struct {
	DB *gorm.DB
}

func NewBackupController(db *gorm.DB) *BackupController {
	return &BackupController{DB: db}
}

// snapshot is the decrypted backup payload. Documents are excluded
// entirely: their bytes would blow up the container and metadata rows
// without bytes cannot be restored (document_data is NOT NULL).
type snapshot struct {
	Version     int                                `json:"version"`
	ExportedAt  time.Time                          `json:"exported_at"`
	Students    []studentModel.StudentModel        `json:"students"`
	Instructors []instructorModel.InstructorModel  `json:"instructors"`
	Services    []serviceModel.ServiceModel        `json:"services"`
	Templates   []serviceModel.ReportTemplateModel `json:"templates"`
	Sessions    []sessionModel.SessionRecordModel  `json:"sessions"`
	Settings    []orgModel.OrgSettingModel         `json:"settings"`
}

// POST /api/o/backup/export  {backup_password}
func (h *BackupController) Export(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)

	var req struct {
		BackupPassword string `json:"backup_password"`
	}
	if err := c.BodyParser(&req); err != nil || req.BackupPassword == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_backup_password")
	}

	snap := snapshot{Version: snapshotVersion, ExportedAt: time.Now().UTC()}
	if err := h.DB.Unscoped().Where("student_org_id = ?", orgID).Find(&snap.Students).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if err := h.DB.Where("instructor_org_id = ?", orgID).Find(&snap.Instructors).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if err := h.DB.Unscoped().Where("service_org_id = ?", orgID).Find(&snap.Services).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if err := h.DB.Where("template_org_id = ?", orgID).Find(&snap.Templates).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if err := h.DB.Where("session_org_id = ?", orgID).Find(&snap.Sessions).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if err := h.DB.Where("org_setting_org_id = ?", orgID).Find(&snap.Settings).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	raw, err := sonic.Marshal(&snap)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal_error")
	}
	box, err := backupService.Encode(raw, req.BackupPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal_error")
	}

	auditService.Record(h.DB, orgID, userID, "backup.export", "org", &orgID,
		map[string]interface{}{"students": len(snap.Students), "sessions": len(snap.Sessions)})

	c.Set(fiber.HeaderContentType, "application/octet-stream")
	c.Set(fiber.HeaderContentDisposition,
		`attachment; filename="backup-`+time.Now().UTC().Format("2006-01-02")+`.ttb"`)
	return c.Send(box)
}

// POST /api/o/backup/import (multipart: file, backup_password)
// Rows are inserted into the current org; colliding primary keys are
// skipped so a restore over partial data does not fail wholesale.
func (h *BackupController) Import(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, _ := helper.GetUserID(c)

	password := c.FormValue("backup_password")
	if password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_backup_password")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_backup_file")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_backup_file")
	}
	box, err := io.ReadAll(f)
	f.Close()
	if err != nil || len(box) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_backup_file")
	}

	raw, err := backupService.Decode(box, password)
	switch err {
	case nil:
	case backupService.ErrDecrypt:
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_backup_password")
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_backup_file")
	}

	var snap snapshot
	if err := sonic.Unmarshal(raw, &snap); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_backup_file")
	}
	if snap.Version != snapshotVersion {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_backup_file")
	}

	// retarget every row at the importing org
	for i := range snap.Instructors {
		snap.Instructors[i].InstructorOrgID = orgID
	}
	for i := range snap.Services {
		snap.Services[i].ServiceOrgID = orgID
	}
	for i := range snap.Templates {
		snap.Templates[i].TemplateOrgID = orgID
	}
	for i := range snap.Students {
		snap.Students[i].StudentOrgID = orgID
	}
	for i := range snap.Sessions {
		snap.Sessions[i].SessionOrgID = orgID
	}
	for i := range snap.Settings {
		snap.Settings[i].OrgSettingOrgID = orgID
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		// parents before children: services, instructors, then the
		// rows that reference them
		if err := insertSkippingConflicts(tx, snap.Services); err != nil {
			return err
		}
		if err := insertSkippingConflicts(tx, snap.Templates); err != nil {
			return err
		}
		if err := insertSkippingConflicts(tx, snap.Instructors); err != nil {
			return err
		}
		if err := insertSkippingConflicts(tx, snap.Students); err != nil {
			return err
		}
		if err := insertSkippingConflicts(tx, snap.Sessions); err != nil {
			return err
		}
		if err := insertSkippingConflicts(tx, snap.Settings); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return helper.JsonDBError(c, err)
	}

	auditService.Record(h.DB, orgID, userID, "backup.import", "org", &orgID,
		map[string]interface{}{"students": len(snap.Students), "sessions": len(snap.Sessions)})
	return helper.JsonOK(c, "backup restored", fiber.Map{
		"students":    len(snap.Students),
		"instructors": len(snap.Instructors),
		"services":    len(snap.Services),
		"templates":   len(snap.Templates),
		"sessions":    len(snap.Sessions),
		"settings":    len(snap.Settings),
	})
}

func insertSkippingConflicts[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 200).Error
}
