package models

import (
	"time"

	"github.com/google/uuid"
)

// Media is the stored metadata of one uploaded report attachment. The bytes
// live in object storage under ObjectKey.
type Media struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	ReportID   *uuid.UUID `json:"report_id" db:"report_id"`
	FileName   string     `json:"file_name" db:"file_name"`
	ObjectKey  string     `json:"object_key" db:"object_key"`
	MimeType   string     `json:"mime_type" db:"mime_type"`
	Size       int64      `json:"size" db:"size"`
	UploadedAt time.Time  `json:"uploaded_at" db:"uploaded_at"`
}
