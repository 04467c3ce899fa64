package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/selin/coursehub/internal/pkg/logger"
)

// LocalStorage handles saving uploaded blobs to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files are stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
// The directory is created if it does not exist.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Save streams an uploaded file to the storage directory under a freshly
// generated UUID name that keeps the original extension. The returned path is
// the storage-relative name to persist in the material record. The generated
// name ignores everything in the client filename except its extension, so
// hostile filenames cannot traverse out of the base directory.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(filepath.Base(fileHeader.Filename))
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Remove the partially written file so no record can ever reference it
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Msg("File saved")
	return uniqueFilename, nil
}

// Delete removes a stored blob. Deleting a blob that is already absent is
// treated as success (idempotent cleanup).
func (ls *LocalStorage) Delete(filePath string) error {
	if filePath == "" {
		return nil
	}

	physicalPath := ls.FullPath(filePath)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// Exists reports whether a stored blob is present on disk.
func (ls *LocalStorage) Exists(filePath string) bool {
	physicalPath := ls.FullPath(filePath)
	if physicalPath == "" {
		return false
	}
	info, err := os.Stat(physicalPath)
	return err == nil && !info.IsDir()
}

// FullPath returns the full filesystem path for a stored blob name. Only the
// base name is honoured so stored paths can never resolve outside basePath.
func (ls *LocalStorage) FullPath(filePath string) string {
	filename := filepath.Base(filePath)
	if filename == "" || filename == "." || filename == "/" {
		return ""
	}

	return filepath.Join(ls.basePath, filename)
}
