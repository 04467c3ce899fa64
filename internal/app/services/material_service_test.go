package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selin/coursehub/internal/app/auth"
	"github.com/selin/coursehub/internal/app/models"
	"github.com/selin/coursehub/internal/app/models/dto"
	"github.com/selin/coursehub/internal/app/repositories"
	"github.com/selin/coursehub/internal/pkg/apperrors"
)

// --- Fakes ---

type fakeMaterialStore struct {
	nextID    int64
	materials map[int64]*models.Material
	gotFilter repositories.MaterialFilter
	listOut   []models.Material
	listTotal int64
	createErr error
	deleteErr error
}

func newFakeMaterialStore() *fakeMaterialStore {
	return &fakeMaterialStore{materials: map[int64]*models.Material{}}
}

func (f *fakeMaterialStore) Create(_ context.Context, m *models.Material) (*models.Material, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	stored := *m
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.materials[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeMaterialStore) GetByID(_ context.Context, id int64) (*models.Material, error) {
	m, ok := f.materials[id]
	if !ok {
		return nil, nil
	}
	clone := *m
	return &clone, nil
}

func (f *fakeMaterialStore) List(_ context.Context, filter repositories.MaterialFilter) ([]models.Material, int64, error) {
	f.gotFilter = filter
	return f.listOut, f.listTotal, nil
}

func (f *fakeMaterialStore) Update(_ context.Context, m *models.Material) (*models.Material, error) {
	if _, ok := f.materials[m.ID]; !ok {
		return nil, nil
	}
	stored := *m
	stored.UpdatedAt = time.Now()
	f.materials[m.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeMaterialStore) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.materials[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.materials, id)
	return nil
}

type fakeBlobStore struct {
	files   map[string]bool
	deleted []string
	saveErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{files: map[string]bool{}}
}

func (f *fakeBlobStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	name := fmt.Sprintf("blob-%d.bin", len(f.files)+1)
	f.files[name] = true
	return name, nil
}

func (f *fakeBlobStore) Delete(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	delete(f.files, filePath)
	return nil
}

func (f *fakeBlobStore) Exists(filePath string) bool { return f.files[filePath] }

func (f *fakeBlobStore) FullPath(filePath string) string { return "/storage/" + filePath }

// --- Helpers ---

const testMaxUploadSize = 1024

func newTestMaterialService(store *fakeMaterialStore, blobs *fakeBlobStore) MaterialService {
	return NewMaterialService(store, blobs, auth.NewAuthorizationService(), testMaxUploadSize)
}

func adminUser() *models.User {
	return &models.User{ID: 1, Email: "admin@coursehub.test", Role: models.RoleAdmin, IsActive: true}
}

func studentUser() *models.User {
	return &models.User{ID: 2, Email: "student@coursehub.test", Role: models.RoleStudent, IsActive: true}
}

func uploadFileHeader(size int64, contentType string) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{
		Filename: "slides.pdf",
		Size:     size,
		Header:   header,
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// --- Upload ---

func TestUpload_StudentForbidden(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())

	req := &dto.UploadMaterialRequest{Title: "Lecture 1", Category: "theory"}
	_, err := svc.Upload(context.Background(), studentUser(), req, uploadFileHeader(10, "application/pdf"))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpload_InvalidCategory(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())

	req := &dto.UploadMaterialRequest{Title: "Lecture 1", Category: "homework"}
	_, err := svc.Upload(context.Background(), adminUser(), req, uploadFileHeader(10, "application/pdf"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
}

func TestUpload_PayloadTooLarge(t *testing.T) {
	blobs := newFakeBlobStore()
	svc := newTestMaterialService(newFakeMaterialStore(), blobs)

	req := &dto.UploadMaterialRequest{Title: "Lecture 1", Category: "theory"}
	_, err := svc.Upload(context.Background(), adminUser(), req, uploadFileHeader(testMaxUploadSize+1, "application/pdf"))
	assert.ErrorIs(t, err, apperrors.ErrPayloadTooLarge)
	assert.Empty(t, blobs.files, "oversized upload must not reach storage")
}

func TestUpload_MissingFile(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())

	req := &dto.UploadMaterialRequest{Title: "Lecture 1", Category: "theory"}
	_, err := svc.Upload(context.Background(), adminUser(), req, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpload_Success(t *testing.T) {
	store := newFakeMaterialStore()
	blobs := newFakeBlobStore()
	svc := newTestMaterialService(store, blobs)

	req := &dto.UploadMaterialRequest{
		Title:       "Lecture 1",
		Description: strPtr("Intro slides"),
		Category:    "theory",
		Week:        intPtr(1),
		Topic:       strPtr("Foundations"),
		Tags:        strPtr(" slides , intro ,"),
	}

	resp, err := svc.Upload(context.Background(), adminUser(), req, uploadFileHeader(100, "application/pdf"))
	require.NoError(t, err)

	assert.Equal(t, "Lecture 1", resp.Title)
	assert.Equal(t, "theory", resp.Category)
	assert.Equal(t, "application/pdf", resp.FileType)
	assert.Equal(t, []string{"slides", "intro"}, resp.Tags)
	require.NotNil(t, resp.UploadedBy)
	assert.Equal(t, int64(1), *resp.UploadedBy)
	assert.True(t, blobs.files[resp.FilePath], "blob must be stored under the returned path")
}

func TestUpload_DefaultsContentType(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())

	req := &dto.UploadMaterialRequest{Title: "Lecture 1", Category: "lab"}
	resp, err := svc.Upload(context.Background(), adminUser(), req, uploadFileHeader(100, ""))
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", resp.FileType)
}

// --- List ---

func TestList_NormalizesPagination(t *testing.T) {
	store := newFakeMaterialStore()
	svc := newTestMaterialService(store, newFakeBlobStore())

	resp, err := svc.List(context.Background(), &dto.MaterialFilterRequest{Page: 0, PageSize: 500})
	require.NoError(t, err)

	// page_size above the ceiling is clamped to it, never coerced to the default
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 100, resp.PageSize)
	assert.Equal(t, 1, store.gotFilter.Page)
	assert.Equal(t, 100, store.gotFilter.PageSize)
	assert.NotNil(t, resp.Materials)
	assert.Empty(t, resp.Materials)
}

func TestList_PassesFilters(t *testing.T) {
	store := newFakeMaterialStore()
	svc := newTestMaterialService(store, newFakeBlobStore())

	filter := &dto.MaterialFilterRequest{
		Category: "lab",
		Week:     intPtr(3),
		Topic:    "graphs",
		Search:   "dijkstra",
		Page:     2,
		PageSize: 10,
	}
	_, err := svc.List(context.Background(), filter)
	require.NoError(t, err)

	require.NotNil(t, store.gotFilter.Category)
	assert.Equal(t, models.CategoryLab, *store.gotFilter.Category)
	assert.Equal(t, 3, *store.gotFilter.Week)
	assert.Equal(t, "graphs", store.gotFilter.Topic)
	assert.Equal(t, "dijkstra", store.gotFilter.Search)
	assert.Equal(t, 2, store.gotFilter.Page)
	assert.Equal(t, 10, store.gotFilter.PageSize)
}

func TestList_InvalidCategory(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())

	_, err := svc.List(context.Background(), &dto.MaterialFilterRequest{Category: "seminar"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
}

// --- GetByID / Update / Delete / Download ---

func seedMaterial(t *testing.T, svc MaterialService) *dto.MaterialResponse {
	t.Helper()
	req := &dto.UploadMaterialRequest{
		Title:    "Lecture 1",
		Category: "theory",
		Week:     intPtr(1),
		Topic:    strPtr("Foundations"),
		Tags:     strPtr("slides"),
	}
	resp, err := svc.Upload(context.Background(), adminUser(), req, uploadFileHeader(100, "application/pdf"))
	require.NoError(t, err)
	return resp
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())

	_, err := svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrMaterialNotFound)
}

func TestUpdate_PartialOnlyTouchesPresentFields(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())
	created := seedMaterial(t, svc)

	var req dto.UpdateMaterialRequest
	req.Title = dto.Optional[string]{Set: true, Valid: true, Value: "Lecture 1 (revised)"}
	req.Week = dto.Optional[int]{Set: true, Valid: false} // explicit null clears

	updated, err := svc.Update(context.Background(), adminUser(), created.ID, &req)
	require.NoError(t, err)

	assert.Equal(t, "Lecture 1 (revised)", updated.Title)
	assert.Nil(t, updated.Week)
	// Omitted fields survive untouched
	require.NotNil(t, updated.Topic)
	assert.Equal(t, "Foundations", *updated.Topic)
	assert.Equal(t, []string{"slides"}, updated.Tags)
	assert.Equal(t, created.FilePath, updated.FilePath)
}

func TestUpdate_NullTitleRejected(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())
	created := seedMaterial(t, svc)

	var req dto.UpdateMaterialRequest
	req.Title = dto.Optional[string]{Set: true, Valid: false}

	_, err := svc.Update(context.Background(), adminUser(), created.ID, &req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdate_InvalidCategoryRejected(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())
	created := seedMaterial(t, svc)

	var req dto.UpdateMaterialRequest
	req.Category = dto.Optional[string]{Set: true, Valid: true, Value: "homework"}

	_, err := svc.Update(context.Background(), adminUser(), created.ID, &req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
}

func TestUpdate_NullTagsClears(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())
	created := seedMaterial(t, svc)

	var req dto.UpdateMaterialRequest
	req.Tags = dto.Optional[[]string]{Set: true, Valid: false}

	updated, err := svc.Update(context.Background(), adminUser(), created.ID, &req)
	require.NoError(t, err)
	assert.Nil(t, updated.Tags)
}

func TestUpdate_StudentForbidden(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())
	created := seedMaterial(t, svc)

	var req dto.UpdateMaterialRequest
	req.Title = dto.Optional[string]{Set: true, Valid: true, Value: "nope"}

	_, err := svc.Update(context.Background(), studentUser(), created.ID, &req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())

	var req dto.UpdateMaterialRequest
	_, err := svc.Update(context.Background(), adminUser(), 999, &req)
	assert.ErrorIs(t, err, apperrors.ErrMaterialNotFound)
}

func TestDelete_RemovesBlobThenRow(t *testing.T) {
	store := newFakeMaterialStore()
	blobs := newFakeBlobStore()
	svc := newTestMaterialService(store, blobs)
	created := seedMaterial(t, svc)

	require.NoError(t, svc.Delete(context.Background(), adminUser(), created.ID))

	assert.Equal(t, []string{created.FilePath}, blobs.deleted)
	_, err := svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrMaterialNotFound)
	_, err = svc.Download(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrMaterialNotFound)
}

func TestDelete_ToleratesRowAlreadyGone(t *testing.T) {
	store := newFakeMaterialStore()
	svc := newTestMaterialService(store, newFakeBlobStore())
	created := seedMaterial(t, svc)

	store.deleteErr = sql.ErrNoRows
	assert.NoError(t, svc.Delete(context.Background(), adminUser(), created.ID))
}

func TestDelete_StudentForbidden(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())
	created := seedMaterial(t, svc)

	err := svc.Delete(context.Background(), studentUser(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestMaterialService(newFakeMaterialStore(), newFakeBlobStore())

	err := svc.Delete(context.Background(), adminUser(), 999)
	assert.ErrorIs(t, err, apperrors.ErrMaterialNotFound)
}

func TestDownload_Success(t *testing.T) {
	blobs := newFakeBlobStore()
	svc := newTestMaterialService(newFakeMaterialStore(), blobs)
	created := seedMaterial(t, svc)

	info, err := svc.Download(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "/storage/"+created.FilePath, info.Path)
	assert.Equal(t, "Lecture 1.bin", info.Filename)
	assert.Equal(t, "application/pdf", info.ContentType)
}

func TestDownload_MissingBlob(t *testing.T) {
	blobs := newFakeBlobStore()
	svc := newTestMaterialService(newFakeMaterialStore(), blobs)
	created := seedMaterial(t, svc)

	delete(blobs.files, created.FilePath)
	_, err := svc.Download(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

// --- Pure helpers ---

func TestParseTags(t *testing.T) {
	assert.Nil(t, ParseTags(nil))
	assert.Equal(t, []string{}, ParseTags(strPtr("")))
	assert.Equal(t, []string{}, ParseTags(strPtr(" , ,")))
	assert.Equal(t, []string{"a", "b"}, ParseTags(strPtr("a,b")))
	assert.Equal(t, []string{"a", "b"}, ParseTags(strPtr(" a , b ")))
}

func TestDownloadFilename(t *testing.T) {
	assert.Equal(t, "Lecture 1.pdf", DownloadFilename("Lecture 1", "abc-123.pdf"))
	assert.Equal(t, "a-b", DownloadFilename("a/b", "blob"))
	assert.Equal(t, "a-b.zip", DownloadFilename(`a\b`, "blob.zip"))
	assert.Equal(t, "say 'hi'.txt", DownloadFilename(`say "hi"`, "blob.txt"))
}

func TestUpload_StoreFailureSurfacesError(t *testing.T) {
	store := newFakeMaterialStore()
	store.createErr = errors.New("insert failed")
	svc := newTestMaterialService(store, newFakeBlobStore())

	req := &dto.UploadMaterialRequest{Title: "Lecture 1", Category: "theory"}
	_, err := svc.Upload(context.Background(), adminUser(), req, uploadFileHeader(100, "application/pdf"))
	assert.Error(t, err)
}
