package controller

import (
	"crypto/md5"
	"encoding/hex"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "tuttiud_backend/internals/features/audit/service"
	dto "tuttiud_backend/internals/features/documents/dto"
	model "tuttiud_backend/internals/features/documents/model"
	docService "tuttiud_backend/internals/features/documents/service"
	helper "tuttiud_backend/internals/helpers"
)

type DocumentController struct {
	DB *gorm.DB
}

func NewDocumentController(db *gorm.DB) *DocumentController {
	return &DocumentController{DB: db}
}

// POST /api/u/documents (multipart: file, optional student_id)
// The same bytes uploaded twice into one org come back 409 with the
// existing document so the client can link instead of re-storing.
func (h *DocumentController) Upload(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing_file")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing_file")
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil || len(data) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing_file")
	}

	var studentID *uuid.UUID
	if v := c.FormValue("student_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid_student_id")
		}
		studentID = &id
	}

	sum := md5.Sum(data)
	hash := hex.EncodeToString(sum[:])

	var existing model.DocumentModel
	err = h.DB.
		Where("document_org_id = ? AND document_md5_hash = ?", orgID, hash).
		First(&existing).Error
	if err == nil {
		return helper.JsonErrorWithData(c, fiber.StatusConflict, "duplicate_document", dto.FromModel(&existing))
	}
	if !helper.IsNotFound(err) {
		return helper.JsonDBError(c, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	row := model.DocumentModel{
		DocumentOrgID:       orgID,
		DocumentStudentID:   studentID,
		DocumentFileName:    fh.Filename,
		DocumentContentType: contentType,
		DocumentSizeBytes:   int64(len(data)),
		DocumentMD5Hash:     hash,
		DocumentData:        data,
		DocumentThumbWebp:   docService.Thumbnail(data, contentType),
		DocumentUploadedBy:  userID,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		// concurrent upload of the same bytes
		if helper.IsUniqueViolation(err) {
			if lookupErr := h.DB.
				Where("document_org_id = ? AND document_md5_hash = ?", orgID, hash).
				First(&existing).Error; lookupErr == nil {
				return helper.JsonErrorWithData(c, fiber.StatusConflict, "duplicate_document", dto.FromModel(&existing))
			}
			return helper.JsonError(c, fiber.StatusConflict, "duplicate_document")
		}
		return helper.JsonDBError(c, err)
	}

	auditService.Record(h.DB, orgID, userID, "document.upload", "document", &row.DocumentID,
		map[string]interface{}{"file_name": row.DocumentFileName, "size": row.DocumentSizeBytes})
	return helper.JsonCreated(c, "document uploaded", dto.FromModel(&row))
}

// GET /api/u/documents?student_id=
func (h *DocumentController) List(c *fiber.Ctx) error {
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	q := h.DB.Model(&model.DocumentModel{}).
		Where("document_org_id = ?", orgID)
	if s := c.Query("student_id"); s != "" {
		q = q.Where("document_student_id = ?", s)
	}

	var rows []model.DocumentModel
	if err := q.
		Omit("document_data", "document_thumb_webp").
		Order("document_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "", dto.FromModels(rows))
}

// GET /api/u/documents/:id/download
func (h *DocumentController) Download(c *fiber.Ctx) error {
	row, errResp := h.load(c)
	if row == nil {
		return errResp
	}
	c.Set(fiber.HeaderContentType, row.DocumentContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+row.DocumentFileName+`"`)
	return c.Send(row.DocumentData)
}

// GET /api/u/documents/:id/thumb
func (h *DocumentController) Thumb(c *fiber.Ctx) error {
	row, errResp := h.load(c)
	if row == nil {
		return errResp
	}
	if len(row.DocumentThumbWebp) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "no_thumbnail")
	}
	c.Set(fiber.HeaderContentType, "image/webp")
	return c.Send(row.DocumentThumbWebp)
}

// DELETE /api/a/documents/:id
func (h *DocumentController) Delete(c *fiber.Ctx) error {
	row, errResp := h.load(c)
	if row == nil {
		return errResp
	}
	if err := h.DB.Delete(row).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	userID, _ := helper.GetUserID(c)
	auditService.Record(h.DB, row.DocumentOrgID, userID, "document.delete", "document", &row.DocumentID, nil)
	return helper.JsonDeleted(c, "document deleted", dto.FromModel(row))
}

func (h *DocumentController) load(c *fiber.Ctx) (*model.DocumentModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "invalid_document_id")
	}
	orgID, err := helper.GetOrgID(c)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusUnauthorized, "missing_token")
	}

	var row model.DocumentModel
	if err := h.DB.
		Where("document_org_id = ? AND document_id = ?", orgID, id).
		First(&row).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "invalid_document_id")
		}
		return nil, helper.JsonDBError(c, err)
	}
	return &row, nil
}
