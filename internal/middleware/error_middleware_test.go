package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/selin/coursehub/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"material not found", apperrors.ErrMaterialNotFound, http.StatusNotFound},
		{"file not found", apperrors.ErrFileNotFound, http.StatusNotFound},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"wrapped not found", apperrors.NewCustomError(apperrors.ErrResourceNotFound, "resource missing"), http.StatusNotFound},
		{"permission denied", apperrors.NewForbiddenError("admin access required"), http.StatusForbidden},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"token invalid", apperrors.ErrTokenInvalid, http.StatusUnauthorized},
		{"payload too large", apperrors.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"validation failed", apperrors.NewValidationError("title required"), http.StatusUnprocessableEntity},
		{"invalid category", apperrors.ErrInvalidCategory, http.StatusUnprocessableEntity},
		{"invalid email", apperrors.ErrInvalidEmail, http.StatusUnprocessableEntity},
		{"email conflict", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"username conflict", apperrors.ErrUsernameAlreadyExists, http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleAPIError(c, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
