package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/selin/coursehub/internal/app/models/dto"
	"github.com/selin/coursehub/internal/app/services"
	"github.com/selin/coursehub/internal/middleware"
)

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid material ID")))
		return 0, false
	}
	return id, true
}

// MaterialController handles material operations
type MaterialController struct {
	materialService services.MaterialService
}

// NewMaterialController creates a new MaterialController
func NewMaterialController(materialService services.MaterialService) *MaterialController {
	return &MaterialController{
		materialService: materialService,
	}
}

// Upload godoc
// @Summary Upload a new material
// @Description Upload a course material file with metadata (admin only)
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param title formData string true "Material title"
// @Param description formData string false "Description"
// @Param category formData string true "Category (theory or lab)"
// @Param week formData int false "Week number"
// @Param topic formData string false "Topic"
// @Param tags formData string false "Comma-separated tags"
// @Success 201 {object} dto.APIResponse{data=dto.MaterialResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 413 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 422 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /materials/upload [post]
func (c *MaterialController) Upload(ctx *gin.Context) {
	var req dto.UploadMaterialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid or missing form fields")))
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid or missing file").WithField("file")))
		return
	}

	currentUser, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	material, err := c.materialService.Upload(ctx.Request.Context(), currentUser, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: material})
}

// List godoc
// @Summary List materials
// @Description List materials with optional filtering and pagination
// @Tags materials
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category (theory or lab)"
// @Param week query int false "Filter by week"
// @Param topic query string false "Filter by topic substring"
// @Param search query string false "Search in title and description"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.MaterialListResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /materials/ [get]
func (c *MaterialController) List(ctx *gin.Context) {
	var filter dto.MaterialFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters")))
		return
	}

	materials, err := c.materialService.List(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: materials})
}

// GetByID godoc
// @Summary Get a material by ID
// @Tags materials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Success 200 {object} dto.APIResponse{data=dto.MaterialResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /materials/{id} [get]
func (c *MaterialController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	material, err := c.materialService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: material})
}

// Update godoc
// @Summary Update material metadata
// @Description Partially update a material; only fields present in the body change (admin only)
// @Tags materials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Param request body dto.UpdateMaterialRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.MaterialResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 422 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /materials/{id} [put]
func (c *MaterialController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request body")))
		return
	}

	currentUser, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	material, err := c.materialService.Update(ctx.Request.Context(), currentUser, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: material})
}

// Delete godoc
// @Summary Delete a material
// @Description Delete a material record and its stored file (admin only)
// @Tags materials
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Success 204
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /materials/{id} [delete]
func (c *MaterialController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	currentUser, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if err := c.materialService.Delete(ctx.Request.Context(), currentUser, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Download godoc
// @Summary Download a material file
// @Description Stream the stored file with a content-disposition derived from the title
// @Tags materials
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Material ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /materials/{id}/download [get]
func (c *MaterialController) Download(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	info, err := c.materialService.Download(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// FileAttachment would sniff the type from the extension; the stored MIME
	// type wins when set beforehand.
	ctx.Header("Content-Type", info.ContentType)
	ctx.FileAttachment(info.Path, info.Filename)
}
