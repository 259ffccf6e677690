package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentModel stores uploaded files inline (bytea). MD5 is computed
// server-side and used for duplicate detection per org.
type DocumentModel struct {
	DocumentID    uuid.UUID `gorm:"column:document_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"document_id"`
	DocumentOrgID uuid.UUID `gorm:"column:document_org_id;type:uuid;not null;index:idx_document_org_md5,unique" json:"document_org_id"`

	DocumentStudentID *uuid.UUID `gorm:"column:document_student_id;type:uuid;index" json:"document_student_id,omitempty"`

	DocumentFileName    string `gorm:"column:document_file_name;type:varchar(255);not null" json:"document_file_name"`
	DocumentContentType string `gorm:"column:document_content_type;type:varchar(100);not null" json:"document_content_type"`
	DocumentSizeBytes   int64  `gorm:"column:document_size_bytes;not null" json:"document_size_bytes"`
	DocumentMD5Hash     string `gorm:"column:document_md5_hash;type:char(32);not null;index:idx_document_org_md5,unique" json:"document_md5_hash"`

	DocumentData      []byte `gorm:"column:document_data;type:bytea;not null" json:"-"`
	DocumentThumbWebp []byte `gorm:"column:document_thumb_webp;type:bytea" json:"-"`

	DocumentUploadedBy uuid.UUID `gorm:"column:document_uploaded_by;type:uuid;not null" json:"document_uploaded_by"`

	DocumentCreatedAt time.Time `gorm:"column:document_created_at;autoCreateTime" json:"document_created_at"`
}

func (DocumentModel) TableName() string { return "documents" }
