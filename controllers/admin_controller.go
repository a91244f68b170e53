package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/middleware"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/models"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/utils"
)

type AdminController struct {
	db *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

func (ac *AdminController) GetEventAttendance(c *gin.Context) {
	var event models.Event
	if err := ac.db.First(&event, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found!")
		return
	}

	var registrations []models.EventRegistration
	if err := ac.db.Preload("User").Where("event_id = ?", event.ID).Find(&registrations).Error; err != nil {
		zap.L().Error("failed to fetch registrations", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	attendance := make([]gin.H, 0, len(registrations))
	for _, registration := range registrations {
		attendance = append(attendance, gin.H{
			"id":                registration.ID,
			"user_id":           registration.UserID,
			"username":          registration.User.Username,
			"email":             registration.User.Email,
			"department":        registration.User.Department,
			"attended":          registration.Attended,
			"registration_date": registration.RegistrationDate,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"event": gin.H{
			"id":        event.ID,
			"title":     event.Title,
			"date_time": event.DateTime,
		},
		"attendance": attendance,
	})
}

type AttendanceUpdate struct {
	UserID   uint `json:"user_id"`
	Attended bool `json:"attended"`
}

type UpdateAttendanceRequest struct {
	Attendance []AttendanceUpdate `json:"attendance"`
}

// UpdateEventAttendance applies each entry to the matching registration.
// Entries without a matching registration are skipped; the response
// reports how many rows were actually updated.
func (ac *AdminController) UpdateEventAttendance(c *gin.Context) {
	admin := middleware.CurrentUser(c)

	var event models.Event
	if err := ac.db.First(&event, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found!")
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body!")
		return
	}

	updated := 0
	for _, update := range req.Attendance {
		result := ac.db.Model(&models.EventRegistration{}).
			Where("event_id = ? AND user_id = ?", event.ID, update.UserID).
			Update("attended", update.Attended)
		if result.Error != nil {
			zap.L().Error("failed to update attendance", zap.Error(result.Error))
			utils.SendError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		updated += int(result.RowsAffected)
	}

	zap.S().Infof("Attendance updated for event %d by admin %s", event.ID, admin.Username)

	c.JSON(http.StatusOK, gin.H{
		"message": "Attendance updated successfully!",
		"updated": updated,
	})
}

func (ac *AdminController) GetEventRegistrations(c *gin.Context) {
	var registrations []models.EventRegistration
	if err := ac.db.Preload("User").Where("event_id = ?", c.Param("id")).Find(&registrations).Error; err != nil {
		zap.L().Error("failed to fetch registrations", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	registrationsData := make([]gin.H, 0, len(registrations))
	for _, registration := range registrations {
		registrationsData = append(registrationsData, gin.H{
			"id": registration.ID,
			"user": gin.H{
				"id":         registration.User.ID,
				"username":   registration.User.Username,
				"email":      registration.User.Email,
				"department": registration.User.Department,
			},
			"registration_date": registration.RegistrationDate,
			"status":            registration.Status,
			"attended":          registration.Attended,
		})
	}

	c.JSON(http.StatusOK, gin.H{"registrations": registrationsData})
}

func (ac *AdminController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := ac.db.Find(&users).Error; err != nil {
		zap.L().Error("failed to fetch users", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	usersData := make([]gin.H, 0, len(users))
	for _, user := range users {
		var eventsCreated, eventsRegistered int64
		ac.db.Model(&models.Event{}).Where("created_by = ?", user.ID).Count(&eventsCreated)
		ac.db.Model(&models.EventRegistration{}).Where("user_id = ?", user.ID).Count(&eventsRegistered)

		usersData = append(usersData, gin.H{
			"id":                user.ID,
			"username":          user.Username,
			"email":             user.Email,
			"department":        user.Department,
			"year":              user.Year,
			"is_organizer":      user.IsOrganizer,
			"is_admin":          user.IsAdmin,
			"created_at":        user.CreatedAt,
			"events_created":    eventsCreated,
			"events_registered": eventsRegistered,
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": usersData})
}

type categoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

func (ac *AdminController) GetStats(c *gin.Context) {
	now := time.Now().UTC()

	var totalUsers, totalOrganizers, totalEvents, activeEvents, totalRegistrations, recentEvents int64
	ac.db.Model(&models.User{}).Count(&totalUsers)
	ac.db.Model(&models.User{}).Where("is_organizer = ?", true).Count(&totalOrganizers)
	ac.db.Model(&models.Event{}).Count(&totalEvents)
	ac.db.Model(&models.Event{}).Where("is_active = ? AND date_time >= ?", true, now).Count(&activeEvents)
	ac.db.Model(&models.EventRegistration{}).Count(&totalRegistrations)
	ac.db.Model(&models.Event{}).Where("created_at >= ?", now.AddDate(0, 0, -7)).Count(&recentEvents)

	var categoryStats []categoryCount
	if err := ac.db.Model(&models.Event{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&categoryStats).Error; err != nil {
		zap.L().Error("failed to fetch category stats", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":         totalUsers,
		"total_organizers":    totalOrganizers,
		"total_events":        totalEvents,
		"active_events":       activeEvents,
		"total_registrations": totalRegistrations,
		"recent_events":       recentEvents,
		"category_stats":      categoryStats,
	})
}
