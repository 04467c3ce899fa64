package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/selin/coursehub/internal/app/controllers"
	"github.com/selin/coursehub/internal/app/models/dto"
	"github.com/selin/coursehub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	materialController *controllers.MaterialController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Material routes - all require a valid token; mutations are admin only
	materials := authenticated.Group("/materials")
	{
		materials.GET("/", materialController.List)
		materials.GET("/:id", materialController.GetByID)
		materials.GET("/:id/download", materialController.Download)

		materialsAdminProtected := materials.Group("")
		materialsAdminProtected.Use(authMiddleware.AdminRequired())
		{
			materialsAdminProtected.POST("/upload", materialController.Upload)
			materialsAdminProtected.PUT("/:id", materialController.Update)
			materialsAdminProtected.DELETE("/:id", materialController.Delete)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
