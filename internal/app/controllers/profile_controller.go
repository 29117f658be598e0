package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models/dto"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/services"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/middleware"
)

// ProfileController handles the cadet profile editor endpoints
type ProfileController struct {
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetOverview returns the caller's profile with both record lists
// @Summary Profile overview
// @Description Returns the caller's personal details, NCC records and internship/placement records
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileOverviewResponse} "Profile overview"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile [get]
func (c *ProfileController) GetOverview(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	overview, err := c.profileService.GetOverview(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: overview,
	})
}

// UpsertStudent saves the caller's personal details
// @Summary Save personal details
// @Description Creates the caller's profile on first save, updates it afterwards
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Personal details"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Profile saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/student [put]
func (c *ProfileController) UpsertStudent(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.profileService.UpsertStudent(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userId", userID).Msg("Profile save failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: student,
	})
}

// AddNccDetail creates an NCC service record
// @Summary Add NCC record
// @Description Creates an NCC service record; capped per student, regimental numbers must be unique within the profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NccDetailRequest true "NCC record"
// @Success 201 {object} dto.APIResponse{data=models.NccDetail} "Record created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Profile not saved yet"
// @Failure 409 {object} dto.ErrorResponse "Cap reached or duplicate regimental number"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/ncc [post]
func (c *ProfileController) AddNccDetail(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.NccDetailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	detail, err := c.profileService.AddNccDetail(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: detail,
	})
}

// UpdateNccDetail updates one of the caller's NCC records
// @Summary Update NCC record
// @Description Updates an NCC record owned by the caller
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "NCC record ID"
// @Param request body dto.NccDetailRequest true "NCC record"
// @Success 200 {object} dto.APIResponse{data=models.NccDetail} "Record updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate regimental number"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/ncc/{id} [put]
func (c *ProfileController) UpdateNccDetail(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	nccID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.NccDetailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	detail, err := c.profileService.UpdateNccDetail(ctx.Request.Context(), userID, nccID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: detail,
	})
}

// DeleteNccDetail removes one of the caller's NCC records
// @Summary Delete NCC record
// @Description Deletes an NCC record owned by the caller
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path int true "NCC record ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Record deleted"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/ncc/{id} [delete]
func (c *ProfileController) DeleteNccDetail(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	nccID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.profileService.DeleteNccDetail(ctx.Request.Context(), userID, nccID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Record deleted"},
	})
}

// AddExperience creates an internship/placement record
// @Summary Add internship/placement record
// @Description Creates an internship or placement record; capped per student
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ExperienceRequest true "Internship/placement record"
// @Success 201 {object} dto.APIResponse{data=models.Experience} "Record created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Profile not saved yet"
// @Failure 409 {object} dto.ErrorResponse "Cap reached"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/experiences [post]
func (c *ProfileController) AddExperience(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	var req dto.ExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	exp, err := c.profileService.AddExperience(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: exp,
	})
}

// UpdateExperience updates one of the caller's internship/placement records
// @Summary Update internship/placement record
// @Description Updates an internship or placement record owned by the caller
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body dto.ExperienceRequest true "Internship/placement record"
// @Success 200 {object} dto.APIResponse{data=models.Experience} "Record updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/experiences/{id} [put]
func (c *ProfileController) UpdateExperience(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	experienceID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.ExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	exp, err := c.profileService.UpdateExperience(ctx.Request.Context(), userID, experienceID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: exp,
	})
}

// DeleteExperience removes one of the caller's internship/placement records
// @Summary Delete internship/placement record
// @Description Deletes an internship or placement record owned by the caller
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Record deleted"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/experiences/{id} [delete]
func (c *ProfileController) DeleteExperience(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	experienceID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.profileService.DeleteExperience(ctx.Request.Context(), userID, experienceID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Record deleted"},
	})
}

// parseIDParam reads the :id path parameter; on failure it writes the error
// response and returns false.
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
