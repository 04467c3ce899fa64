package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selin/coursehub/internal/app/models"
	"github.com/selin/coursehub/internal/pkg/apperrors"
	"github.com/selin/coursehub/internal/pkg/dberrors"
	"github.com/selin/coursehub/internal/pkg/logger"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const userColumns = "id, email, username, password, role, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var role string

	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, &role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.Role, err = models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("stored user %d has invalid role: %w", u.ID, err)
	}

	return &u, nil
}

// Create inserts a new user and returns it with the assigned id and timestamps.
// Duplicate email or username map to the corresponding conflict errors.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query, args, err := r.sb.Insert("users").
		Columns("email", "username", "password", "role", "is_active").
		Values(user.Email, user.Username, user.Password, string(user.Role), user.IsActive).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert user query: %w", err)
	}

	created, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error inserting user")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return created, nil
}

// GetByID retrieves a user by id. Returns (nil, nil) when no row matches.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error querying user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when no row matches.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("email", email).Msg("Error querying user by email")
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return u, nil
}
