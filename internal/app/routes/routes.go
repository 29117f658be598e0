package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/controllers"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models/dto"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	contentController *controllers.ContentController,
	profileController *controllers.ProfileController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public content routes ---
	v1.GET("/achievements", contentController.ListAchievements)
	v1.GET("/announcements", contentController.ListAnnouncements)
	v1.GET("/gallery", contentController.ListGallery)

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/google", authController.GoogleLogin)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.GET("/verify-email", authController.VerifyEmail)
		auth.POST("/resend-verification", authController.ResendVerification)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/session", authController.GetSession)
		authenticated.GET("/auth/is-admin", authController.IsAdmin)
		authenticated.PATCH("/auth/user", authController.UpdateUser)

		profile := authenticated.Group("/profile")
		{
			profile.GET("", profileController.GetOverview)
			profile.PUT("/student", profileController.UpsertStudent)
			profile.POST("/ncc", profileController.AddNccDetail)
			profile.PUT("/ncc/:id", profileController.UpdateNccDetail)
			profile.DELETE("/ncc/:id", profileController.DeleteNccDetail)
			profile.POST("/experiences", profileController.AddExperience)
			profile.PUT("/experiences/:id", profileController.UpdateExperience)
			profile.DELETE("/experiences/:id", profileController.DeleteExperience)
		}

		// Admin console; the role is checked against the database per request
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/records", adminController.GetRecords)
			admin.GET("/export", adminController.ExportStudentData)
			admin.POST("/uploads/:bucket", adminController.UploadImage)
			admin.POST("/:kind", adminController.CreateRecord)
			admin.PUT("/:kind/:id", adminController.UpdateRecord)
			admin.DELETE("/:kind/:id", adminController.DeleteRecord)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
