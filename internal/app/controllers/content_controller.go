package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models/dto"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/services"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/middleware"
)

// ContentController serves the public content pages
type ContentController struct {
	contentService *services.ContentService
	logger         zerolog.Logger
}

// NewContentController creates a new ContentController
func NewContentController(contentService *services.ContentService, logger zerolog.Logger) *ContentController {
	return &ContentController{
		contentService: contentService,
		logger:         logger,
	}
}

// ListAchievements lists all achievements
// @Summary List achievements
// @Description Returns every achievement, newest first
// @Tags content
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Achievement} "Achievements"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /achievements [get]
func (c *ContentController) ListAchievements(ctx *gin.Context) {
	achievements, err := c.contentService.ListAchievements(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: achievements,
	})
}

// ListAnnouncements lists all announcements
// @Summary List announcements
// @Description Returns every announcement, newest first
// @Tags content
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Announcement} "Announcements"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements [get]
func (c *ContentController) ListAnnouncements(ctx *gin.Context) {
	announcements, err := c.contentService.ListAnnouncements(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: announcements,
	})
}

// ListGallery lists all gallery items
// @Summary List gallery
// @Description Returns every gallery item, newest first
// @Tags content
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.GalleryItem} "Gallery items"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /gallery [get]
func (c *ContentController) ListGallery(ctx *gin.Context) {
	items, err := c.contentService.ListGallery(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: items,
	})
}
