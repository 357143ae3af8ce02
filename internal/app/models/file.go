package models

import "time"

// File is the metadata row for an uploaded attachment. The bytes live in the
// configured object store under ObjectKey.
type File struct {
	ID          int64     `json:"id" db:"id"`
	FileName    string    `json:"fileName" db:"file_name"`
	ObjectKey   string    `json:"-" db:"object_key"`
	ContentType string    `json:"fileType" db:"content_type"`
	Size        int64     `json:"fileSize" db:"size"`
	UploadedBy  int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
