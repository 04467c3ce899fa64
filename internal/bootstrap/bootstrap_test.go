package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	appControllers "github.com/selin/coursehub/internal/app/controllers"
	"github.com/selin/coursehub/internal/config"
	appMiddleware "github.com/selin/coursehub/internal/middleware"
)

func newTestRouterDeps() *Dependencies {
	// Handlers are never invoked by these tests, so nil services are fine.
	return &Dependencies{
		AuthController:     appControllers.NewAuthController(nil),
		MaterialController: appControllers.NewMaterialController(nil),
		AuthMiddleware:     appMiddleware.NewAuthMiddleware(nil, nil),
	}
}

func TestSetupRouter_CORSPreflight(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "production"
	cfg.Storage.MaxUploadSize = 1 << 20

	router := SetupRouter(cfg, newTestRouterDeps(), zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	allowHeaders := strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, allowHeaders, "authorization")
}

func TestSetupRouter_CORSHeadersOnSimpleRequest(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "production"
	cfg.Storage.MaxUploadSize = 1 << 20

	router := SetupRouter(cfg, newTestRouterDeps(), zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
