package services

import (
	"context"
	"fmt"

	"github.com/selin/coursehub/internal/app/models"
	"github.com/selin/coursehub/internal/app/models/dto"
	"github.com/selin/coursehub/internal/pkg/apperrors"
	pkgauth "github.com/selin/coursehub/internal/pkg/auth"
	"github.com/selin/coursehub/internal/pkg/logger"
	"github.com/selin/coursehub/internal/pkg/validation"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo userStore
	tokens   tokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo userStore, tokens tokenIssuer) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new student account. Admin accounts are only created
// through seeding.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if !validation.ValidEmail(req.Email) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail, "email format is invalid")
	}
	if !validation.ValidUsername(req.Username) {
		return nil, apperrors.NewValidationError("username must be 3-100 characters of letters, digits or underscores")
	}
	if !validation.ValidPassword(req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidPassword,
			fmt.Sprintf("password must be at least %d characters", validation.PasswordMinLength))
	}

	hashed, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hashed,
		Role:     models.RoleStudent,
		IsActive: true,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", created.ID).Str("email", created.Email).Msg("User registered")
	resp := dto.NewUserResponse(created)
	return &resp, nil
}

// Login verifies credentials and mints an access token.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if user == nil || !pkgauth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	accessToken, expiresIn, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.NewUserResponse(user),
	}, nil
}
