package dto

import (
	"time"

	"github.com/selin/coursehub/internal/app/models"
)

// --- Request DTOs ---

// UploadMaterialRequest represents the multipart form fields accompanying an
// uploaded file. Tags arrive as a single comma-separated string.
type UploadMaterialRequest struct {
	Title       string  `form:"title" binding:"required" example:"Lecture 1"`       // Material title
	Description *string `form:"description" example:"Introductory lecture slides"`  // Optional description
	Category    string  `form:"category" binding:"required" example:"theory"`       // Category (theory or lab)
	Week        *int    `form:"week" example:"1"`                                   // Optional week number
	Topic       *string `form:"topic" example:"Foundations"`                        // Optional topic
	Tags        *string `form:"tags" example:"slides,intro"`                        // Optional comma-separated tags
}

// UpdateMaterialRequest represents a partial metadata update. Every field is
// tri-state: omitted fields are untouched, explicit nulls clear nullable
// columns, values replace.
type UpdateMaterialRequest struct {
	Title       Optional[string]   `json:"title"`
	Description Optional[string]   `json:"description"`
	Category    Optional[string]   `json:"category"`
	Week        Optional[int]      `json:"week"`
	Topic       Optional[string]   `json:"topic"`
	Tags        Optional[[]string] `json:"tags"`
}

// MaterialFilterRequest represents list query parameters
type MaterialFilterRequest struct {
	Category string `form:"category" example:"theory"`      // Filter by category
	Week     *int   `form:"week" example:"1"`               // Filter by exact week
	Topic    string `form:"topic" example:"foundations"`    // Case-insensitive topic substring
	Search   string `form:"search" example:"lecture"`       // Case-insensitive search over title and description
	Page     int    `form:"page,default=1" example:"1"`     // 1-based page number
	PageSize int    `form:"page_size,default=20" example:"20"` // Page size (max 100)
}

// --- Response DTOs ---

// MaterialResponse represents the data returned for a single material
type MaterialResponse struct {
	ID          int64     `json:"id" example:"15"`
	Title       string    `json:"title" example:"Lecture 1"`
	Description *string   `json:"description" example:"Introductory lecture slides"`
	FilePath    string    `json:"filePath" example:"9f3c2d1e-8a4b-4f6c-9d2e-1a2b3c4d5e6f.pdf"`
	FileType    string    `json:"fileType" example:"application/pdf"`
	Category    string    `json:"category" example:"theory"`
	Week        *int      `json:"week" example:"1"`
	Topic       *string   `json:"topic" example:"Foundations"`
	Tags        []string  `json:"tags"`
	UploadedBy  *int64    `json:"uploadedBy" example:"1"`
	CreatedAt   time.Time `json:"createdAt" example:"2024-01-15T10:00:00Z"`
	UpdatedAt   time.Time `json:"updatedAt" example:"2024-01-16T11:30:00Z"`
}

// MaterialListResponse represents a paginated list of materials
type MaterialListResponse struct {
	Total     int64              `json:"total" example:"42"`    // Total matching records ignoring pagination
	Page      int                `json:"page" example:"1"`      // Echoed 1-based page number
	PageSize  int                `json:"page_size" example:"20"` // Echoed page size
	Materials []MaterialResponse `json:"materials"`             // Records for the current page
}

// NewMaterialResponse maps a material record to its response form
func NewMaterialResponse(m *models.Material) MaterialResponse {
	return MaterialResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		FilePath:    m.FilePath,
		FileType:    m.FileType,
		Category:    string(m.Category),
		Week:        m.Week,
		Topic:       m.Topic,
		Tags:        m.Tags,
		UploadedBy:  m.UploadedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
