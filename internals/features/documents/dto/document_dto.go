package dto

import (
	"time"

	"github.com/google/uuid"

	model "tuttiud_backend/internals/features/documents/model"
)

type DocumentResp struct {
	DocumentID          uuid.UUID  `json:"document_id"`
	DocumentStudentID   *uuid.UUID `json:"document_student_id,omitempty"`
	DocumentFileName    string     `json:"document_file_name"`
	DocumentContentType string     `json:"document_content_type"`
	DocumentSizeBytes   int64      `json:"document_size_bytes"`
	DocumentMD5Hash     string     `json:"document_md5_hash"`
	DocumentHasThumb    bool       `json:"document_has_thumb"`
	DocumentUploadedBy  uuid.UUID  `json:"document_uploaded_by"`
	DocumentCreatedAt   time.Time  `json:"document_created_at"`
}

func FromModel(m *model.DocumentModel) DocumentResp {
	return DocumentResp{
		DocumentID:          m.DocumentID,
		DocumentStudentID:   m.DocumentStudentID,
		DocumentFileName:    m.DocumentFileName,
		DocumentContentType: m.DocumentContentType,
		DocumentSizeBytes:   m.DocumentSizeBytes,
		DocumentMD5Hash:     m.DocumentMD5Hash,
		DocumentHasThumb:    len(m.DocumentThumbWebp) > 0,
		DocumentUploadedBy:  m.DocumentUploadedBy,
		DocumentCreatedAt:   m.DocumentCreatedAt,
	}
}

func FromModels(ms []model.DocumentModel) []DocumentResp {
	out := make([]DocumentResp, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
