package services

import (
	"context"
	"mime/multipart"

	"github.com/selin/coursehub/internal/app/models"
	"github.com/selin/coursehub/internal/app/repositories"
)

// materialStore is the slice of MaterialRepository the material service needs.
type materialStore interface {
	Create(ctx context.Context, m *models.Material) (*models.Material, error)
	GetByID(ctx context.Context, id int64) (*models.Material, error)
	List(ctx context.Context, filter repositories.MaterialFilter) ([]models.Material, int64, error)
	Update(ctx context.Context, m *models.Material) (*models.Material, error)
	Delete(ctx context.Context, id int64) error
}

// blobStore is the slice of filestorage.LocalStorage the material service needs.
type blobStore interface {
	Save(fileHeader *multipart.FileHeader) (string, error)
	Delete(filePath string) error
	Exists(filePath string) bool
	FullPath(filePath string) string
}

// userStore is the slice of UserRepository the auth service needs.
type userStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// tokenIssuer mints access tokens for authenticated users.
type tokenIssuer interface {
	GenerateToken(user *models.User) (accessToken string, expiresIn int, err error)
}
