package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/selin/coursehub/internal/app/auth"
	"github.com/selin/coursehub/internal/app/models"
	"github.com/selin/coursehub/internal/app/models/dto"
	"github.com/selin/coursehub/internal/app/repositories"
	"github.com/selin/coursehub/internal/pkg/apperrors"
	"github.com/selin/coursehub/internal/pkg/helpers"
	"github.com/selin/coursehub/internal/pkg/logger"
	"github.com/selin/coursehub/internal/pkg/validation"
)

// DownloadInfo describes a resolved blob ready to stream back to the client.
type DownloadInfo struct {
	Path        string // Full filesystem path of the blob
	Filename    string // Suggested download filename (sanitised title + extension)
	ContentType string // Stored MIME type
}

// MaterialService defines the interface for material operations
type MaterialService interface {
	Upload(ctx context.Context, currentUser *models.User, req *dto.UploadMaterialRequest, file *multipart.FileHeader) (*dto.MaterialResponse, error)
	List(ctx context.Context, filter *dto.MaterialFilterRequest) (*dto.MaterialListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.MaterialResponse, error)
	Update(ctx context.Context, currentUser *models.User, id int64, req *dto.UpdateMaterialRequest) (*dto.MaterialResponse, error)
	Delete(ctx context.Context, currentUser *models.User, id int64) error
	Download(ctx context.Context, id int64) (*DownloadInfo, error)
}

// materialServiceImpl implements MaterialService
type materialServiceImpl struct {
	materialRepo  materialStore
	storage       blobStore
	authzService  *auth.AuthorizationService
	maxUploadSize int64
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(
	materialRepo materialStore,
	storage blobStore,
	authzService *auth.AuthorizationService,
	maxUploadSize int64,
) MaterialService {
	return &materialServiceImpl{
		materialRepo:  materialRepo,
		storage:       storage,
		authzService:  authzService,
		maxUploadSize: maxUploadSize,
	}
}

// ParseTags splits a comma-separated tag string, trimming whitespace and
// dropping empty entries. A nil input means no tags were supplied and yields
// nil, which persists as NULL rather than an empty list.
func ParseTags(tags *string) []string {
	if tags == nil {
		return nil
	}

	parsed := []string{}
	for _, tag := range strings.Split(*tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			parsed = append(parsed, tag)
		}
	}
	return parsed
}

// Upload stores the uploaded blob and creates the material record.
// The blob is written before the row is inserted: an insert failure can leave
// an orphaned blob for out-of-band cleanup, but no row ever references a blob
// that was not fully written.
func (s *materialServiceImpl) Upload(ctx context.Context, currentUser *models.User, req *dto.UploadMaterialRequest, file *multipart.FileHeader) (*dto.MaterialResponse, error) {
	if err := s.authzService.RequireAdmin(currentUser); err != nil {
		return nil, err
	}

	if !validation.ValidTitle(req.Title) {
		return nil, apperrors.NewValidationError("title must be between 1 and 255 characters")
	}

	category, err := models.ParseMaterialCategory(req.Category)
	if err != nil {
		return nil, err
	}

	if file == nil {
		return nil, apperrors.NewValidationError("file is required")
	}
	if file.Size > s.maxUploadSize {
		return nil, apperrors.NewCustomError(apperrors.ErrPayloadTooLarge,
			fmt.Sprintf("file size exceeds maximum allowed size of %d bytes", s.maxUploadSize))
	}

	filePath, err := s.storage.Save(file)
	if err != nil {
		return nil, fmt.Errorf("error saving file: %w", err)
	}

	fileType := file.Header.Get("Content-Type")
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	material := &models.Material{
		Title:       req.Title,
		Description: req.Description,
		FilePath:    filePath,
		FileType:    fileType,
		Category:    category,
		Week:        req.Week,
		Topic:       req.Topic,
		Tags:        ParseTags(req.Tags),
		UploadedBy:  &currentUser.ID,
	}

	created, err := s.materialRepo.Create(ctx, material)
	if err != nil {
		// The blob stays behind for out-of-band cleanup; no row references it.
		logger.Warn().Str("filePath", filePath).Msg("Material insert failed, blob orphaned")
		return nil, fmt.Errorf("error creating material: %w", err)
	}

	resp := dto.NewMaterialResponse(created)
	return &resp, nil
}

// List returns the materials matching the filter with the total count.
// A page past the end of the result set yields an empty slice, not an error.
func (s *materialServiceImpl) List(ctx context.Context, filter *dto.MaterialFilterRequest) (*dto.MaterialListResponse, error) {
	page, pageSize := helpers.NormalizePageParams(filter.Page, filter.PageSize)

	repoFilter := repositories.MaterialFilter{
		Week:     filter.Week,
		Topic:    filter.Topic,
		Search:   filter.Search,
		Page:     page,
		PageSize: pageSize,
	}
	if filter.Category != "" {
		category, err := models.ParseMaterialCategory(filter.Category)
		if err != nil {
			return nil, err
		}
		repoFilter.Category = &category
	}

	materials, total, err := s.materialRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("error listing materials: %w", err)
	}

	responses := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		responses = append(responses, dto.NewMaterialResponse(&materials[i]))
	}

	return &dto.MaterialListResponse{
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
		Materials: responses,
	}, nil
}

// GetByID retrieves a material by id
func (s *materialServiceImpl) GetByID(ctx context.Context, id int64) (*dto.MaterialResponse, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting material: %w", err)
	}
	if material == nil {
		return nil, apperrors.ErrMaterialNotFound
	}

	resp := dto.NewMaterialResponse(material)
	return &resp, nil
}

// Update applies a partial metadata update. Only fields present in the
// payload change; explicit nulls clear nullable fields, while title and
// category may not be nulled out.
func (s *materialServiceImpl) Update(ctx context.Context, currentUser *models.User, id int64, req *dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	if err := s.authzService.RequireAdmin(currentUser); err != nil {
		return nil, err
	}

	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting material: %w", err)
	}
	if material == nil {
		return nil, apperrors.ErrMaterialNotFound
	}

	if req.Title.Set {
		if !req.Title.Valid || !validation.ValidTitle(req.Title.Value) {
			return nil, apperrors.NewValidationError("title must be between 1 and 255 characters")
		}
		material.Title = req.Title.Value
	}
	if req.Category.Set {
		if !req.Category.Valid {
			return nil, apperrors.NewValidationError("category cannot be null")
		}
		category, err := models.ParseMaterialCategory(req.Category.Value)
		if err != nil {
			return nil, err
		}
		material.Category = category
	}
	if req.Description.Set {
		material.Description = req.Description.Ptr()
	}
	if req.Week.Set {
		material.Week = req.Week.Ptr()
	}
	if req.Topic.Set {
		material.Topic = req.Topic.Ptr()
	}
	if req.Tags.Set {
		if req.Tags.Valid {
			material.Tags = req.Tags.Value
		} else {
			material.Tags = nil
		}
	}

	updated, err := s.materialRepo.Update(ctx, material)
	if err != nil {
		return nil, fmt.Errorf("error updating material: %w", err)
	}
	if updated == nil {
		return nil, apperrors.ErrMaterialNotFound
	}

	resp := dto.NewMaterialResponse(updated)
	return &resp, nil
}

// Delete removes the blob first, then the row. A blob already missing from
// storage is treated as cleaned up. A row delete failing after the unlink
// leaves a dangling record whose downloads degrade to not-found; blob removal
// is irreversible so this beats leaking disk space.
func (s *materialServiceImpl) Delete(ctx context.Context, currentUser *models.User, id int64) error {
	if err := s.authzService.RequireAdmin(currentUser); err != nil {
		return err
	}

	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting material: %w", err)
	}
	if material == nil {
		return apperrors.ErrMaterialNotFound
	}

	if err := s.storage.Delete(material.FilePath); err != nil {
		return fmt.Errorf("error deleting file: %w", err)
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Row vanished between resolve and delete; nothing left to do.
			logger.Warn().Int64("id", id).Msg("Material row already removed")
			return nil
		}
		return fmt.Errorf("error deleting material: %w", err)
	}

	return nil
}

// Download resolves the material and its blob for streaming. A missing record
// and a missing blob both surface as not-found to the caller.
func (s *materialServiceImpl) Download(ctx context.Context, id int64) (*DownloadInfo, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting material: %w", err)
	}
	if material == nil {
		return nil, apperrors.ErrMaterialNotFound
	}

	if !s.storage.Exists(material.FilePath) {
		return nil, apperrors.ErrFileNotFound
	}

	return &DownloadInfo{
		Path:        s.storage.FullPath(material.FilePath),
		Filename:    DownloadFilename(material.Title, material.FilePath),
		ContentType: material.FileType,
	}, nil
}

// DownloadFilename derives the suggested download name from the material
// title and the stored blob's extension. Path separators in the title are
// replaced so the content-disposition header and filesystem interactions
// cannot be corrupted.
func DownloadFilename(title, filePath string) string {
	safeTitle := strings.NewReplacer("/", "-", "\\", "-", "\"", "'").Replace(title)
	return safeTitle + filepath.Ext(filePath)
}
