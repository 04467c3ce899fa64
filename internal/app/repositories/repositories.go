package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances sharing one connection pool
type Repositories struct {
	UserRepository     *UserRepository
	MaterialRepository *MaterialRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		MaterialRepository: NewMaterialRepository(db),
	}
}
