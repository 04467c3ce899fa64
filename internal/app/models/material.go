package models

import (
	"time"

	"github.com/selin/coursehub/internal/pkg/apperrors"
)

// MaterialCategory defines the category of a course material. It is a closed
// set persisted as its string form; unrecognized stored values fail decoding.
type MaterialCategory string

const (
	CategoryTheory MaterialCategory = "theory"
	CategoryLab    MaterialCategory = "lab"
)

// ParseMaterialCategory decodes a category string, rejecting unknown values.
func ParseMaterialCategory(value string) (MaterialCategory, error) {
	switch MaterialCategory(value) {
	case CategoryTheory, CategoryLab:
		return MaterialCategory(value), nil
	default:
		return "", apperrors.ErrInvalidCategory
	}
}

// Material represents an uploaded course material record in the 'materials' table.
// FilePath is the storage-relative blob name; it references an existing blob
// for the lifetime of the record except during the narrow delete window where
// the blob is unlinked before the row is removed.
type Material struct {
	ID          int64            `json:"id" db:"id"`
	Title       string           `json:"title" db:"title"`
	Description *string          `json:"description" db:"description"`
	FilePath    string           `json:"filePath" db:"file_path"`
	FileType    string           `json:"fileType" db:"file_type"` // MIME type
	Category    MaterialCategory `json:"category" db:"category"`
	Week        *int             `json:"week" db:"week"`
	Topic       *string          `json:"topic" db:"topic"`
	Tags        []string         `json:"tags" db:"tags"` // nil means no tags were supplied (distinct from empty)
	UploadedBy  *int64           `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}
