package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models/dto"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/services"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/middleware"
)

// AdminController handles the admin console endpoints
type AdminController struct {
	adminService  *services.AdminService
	exportService *services.ExportService
	logger        zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, exportService *services.ExportService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService:  adminService,
		exportService: exportService,
		logger:        logger,
	}
}

// GetRecords loads the full admin snapshot
// @Summary Admin snapshot
// @Description Returns every editable table in one response
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminRecordsResponse} "Snapshot"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/records [get]
func (c *AdminController) GetRecords(ctx *gin.Context) {
	snapshot, err := c.adminService.Snapshot(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: snapshot,
	})
}

// CreateRecord inserts a record of the given kind
// @Summary Create record
// @Description Inserts a row of the given kind from a column/value map
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Record kind" Enums(student, ncc, experience, achievement, announcement, gallery)
// @Param request body dto.AdminMutationRequest true "Column/value map"
// @Success 201 {object} dto.APIResponse{data=dto.AdminMutationResponse} "Record created"
// @Failure 400 {object} dto.ErrorResponse "Unknown kind or column"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/{kind} [post]
func (c *AdminController) CreateRecord(ctx *gin.Context) {
	var req dto.AdminMutationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.adminService.CreateRecord(ctx.Request.Context(), ctx.Param("kind"), req.Fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	snapshot, err := c.adminService.Snapshot(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.AdminMutationResponse{ID: response.ID, Records: snapshot},
	})
}

// UpdateRecord updates a record of the given kind
// @Summary Update record
// @Description Applies a column/value map to one row of the given kind
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Record kind" Enums(student, ncc, experience, achievement, announcement, gallery)
// @Param id path int true "Record ID"
// @Param request body dto.AdminMutationRequest true "Column/value map"
// @Success 200 {object} dto.APIResponse{data=dto.AdminMutationResponse} "Record updated"
// @Failure 400 {object} dto.ErrorResponse "Unknown kind or column"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/{kind}/{id} [put]
func (c *AdminController) UpdateRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.AdminMutationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.adminService.UpdateRecord(ctx.Request.Context(), ctx.Param("kind"), id, req.Fields); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	snapshot, err := c.adminService.Snapshot(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AdminMutationResponse{Records: snapshot},
	})
}

// DeleteRecord removes a record of the given kind
// @Summary Delete record
// @Description Deletes one row of the given kind; deleting an absent id succeeds
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Record kind" Enums(student, ncc, experience, achievement, announcement, gallery)
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.AdminMutationResponse} "Record deleted"
// @Failure 400 {object} dto.ErrorResponse "Unknown kind"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/{kind}/{id} [delete]
func (c *AdminController) DeleteRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.adminService.DeleteRecord(ctx.Request.Context(), ctx.Param("kind"), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	snapshot, err := c.adminService.Snapshot(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AdminMutationResponse{Records: snapshot},
	})
}

// UploadImage stores an image in a known bucket
// @Summary Upload image
// @Description Stores an image in the given bucket and returns its public URL
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param bucket path string true "Storage bucket" Enums(gallery_images, achievement_images)
// @Param file formData file true "Image file"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse} "Image stored"
// @Failure 400 {object} dto.ErrorResponse "Unknown bucket or missing file"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/uploads/{bucket} [post]
func (c *AdminController) UploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.adminService.UploadImage(fileHeader, ctx.Param("bucket"))
	if err != nil {
		c.logger.Warn().Err(err).Str("bucket", ctx.Param("bucket")).Msg("Image upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: response,
	})
}

// ExportStudentData streams the Excel export
// @Summary Export student data
// @Description Builds an Excel workbook with students, NCC records and internship/placement records
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "Workbook"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/export [get]
func (c *AdminController) ExportStudentData(ctx *gin.Context) {
	buf, err := c.exportService.BuildWorkbook(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Excel export failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+services.ExportFilename+`"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
