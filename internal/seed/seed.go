package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/selin/coursehub/internal/app/models"
	appRepos "github.com/selin/coursehub/internal/app/repositories"
	"github.com/selin/coursehub/internal/config"
	"github.com/selin/coursehub/internal/pkg/auth"
)

// CreateDefaultData ensures the default admin account exists. Registration
// only produces student accounts, so the seeded admin is the entry point for
// material management.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		lgr.Info().Msg("No admin credentials configured, skipping admin seed")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	existing, err := userRepo.GetByEmail(ctx, cfg.Admin.Email)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if existing != nil {
		lgr.Info().Str("email", cfg.Admin.Email).Msg("Admin user already exists, skipping creation")
		return nil
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Creating default admin user...")

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	username := cfg.Admin.Username
	if username == "" {
		username = "admin"
	}

	admin := &appModels.User{
		Email:    cfg.Admin.Email,
		Username: username,
		Password: hashed,
		Role:     appModels.RoleAdmin,
		IsActive: true,
	}

	created, err := userRepo.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	lgr.Info().Int64("adminID", created.ID).Msg("Default admin user created successfully")
	return nil
}
