package auth

import (
	"github.com/selin/coursehub/internal/app/models"
	"github.com/selin/coursehub/internal/pkg/apperrors"
)

// AuthorizationService performs role checks on resolved users. Token
// verification and identity resolution happen before this layer; it only
// decides whether an already-authenticated user may perform an operation.
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// RequireAdmin returns a forbidden error unless the user holds the admin role.
func (s *AuthorizationService) RequireAdmin(user *models.User) error {
	if user == nil {
		return apperrors.ErrTokenInvalid
	}
	if !user.IsAdmin() {
		return apperrors.NewForbiddenError("admin access required")
	}
	return nil
}
