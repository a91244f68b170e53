package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/config"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/controllers"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/middleware"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	notificationService := services.NewNotificationService(db)

	authController := controllers.NewAuthController(db, cfg.JWTSecret, notificationService)
	userController := controllers.NewUserController(db)
	eventController := controllers.NewEventController(db, cfg.JWTSecret, notificationService, emailService)
	notificationController := controllers.NewNotificationController(notificationService)
	certificateController := controllers.NewCertificateController(db)
	adminController := controllers.NewAdminController(db)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "College Event Aggregator API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":   []string{"/register", "/login"},
				"events": []string{"/events", "/events/:id", "/my-events"},
				"user":   []string{"/profile", "/notifications"},
			},
		})
	})

	// Public routes. The auth endpoints are rate limited per client IP.
	authLimit := middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	r.POST("/register", authLimit, authController.Register)
	r.POST("/login", authLimit, authController.Login)

	r.GET("/events", eventController.GetEvents)
	r.GET("/events/featured", eventController.GetFeaturedEvents)
	r.GET("/events/:id", eventController.GetEvent)
	r.GET("/categories", eventController.GetCategories)
	r.GET("/departments", eventController.GetDepartments)

	protected := r.Group("/", middleware.AuthMiddleware(db, cfg.JWTSecret))
	{
		protected.GET("/profile", userController.GetProfile)
		protected.PUT("/profile", userController.UpdateProfile)

		protected.POST("/events", eventController.CreateEvent)
		protected.PUT("/events/:id", eventController.UpdateEvent)
		protected.DELETE("/events/:id", eventController.DeleteEvent)
		protected.POST("/events/:id/register", eventController.RegisterForEvent)
		protected.POST("/events/:id/unregister", eventController.UnregisterFromEvent)
		protected.GET("/my-events", eventController.GetMyEvents)

		protected.GET("/notifications", notificationController.GetNotifications)
		protected.PUT("/notifications/:id/read", notificationController.MarkAsRead)
		protected.POST("/notifications/read-all", notificationController.MarkAllAsRead)

		protected.GET("/certificates", certificateController.GetCertificates)
		protected.GET("/certificates/:id", certificateController.GetCertificate)
		protected.POST("/events/:id/certificates", certificateController.GenerateCertificate)

		admin := protected.Group("/", middleware.AdminRequired())
		{
			admin.GET("/stats", adminController.GetStats)
			admin.GET("/admin/users", adminController.GetAllUsers)
			admin.GET("/admin/events/:id/attendance", adminController.GetEventAttendance)
			admin.PUT("/admin/events/:id/attendance", adminController.UpdateEventAttendance)
			admin.GET("/admin/events/:id/registrations", adminController.GetEventRegistrations)
		}
	}
}
