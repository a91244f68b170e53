package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/middleware"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/models"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/utils"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var eventsCreated, eventsRegistered, eventsAttended int64
	uc.db.Model(&models.Event{}).Where("created_by = ?", user.ID).Count(&eventsCreated)
	uc.db.Model(&models.EventRegistration{}).Where("user_id = ?", user.ID).Count(&eventsRegistered)
	uc.db.Model(&models.EventRegistration{}).Where("user_id = ? AND attended = ?", user.ID, true).Count(&eventsAttended)

	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"id":              user.ID,
			"username":        user.Username,
			"email":           user.Email,
			"department":      user.Department,
			"year":            user.Year,
			"is_organizer":    user.IsOrganizer,
			"is_admin":        user.IsAdmin,
			"created_at":      user.CreatedAt,
			"profile_picture": user.ProfilePicture,
			"statistics": gin.H{
				"events_created":    eventsCreated,
				"events_registered": eventsRegistered,
				"events_attended":   eventsAttended,
			},
		},
	})
}

type UpdateProfileRequest struct {
	Username   *string `json:"username"`
	Department *string `json:"department"`
	Year       *string `json:"year"`
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body!")
		return
	}

	updates := map[string]interface{}{}

	if req.Username != nil && *req.Username != user.Username {
		var existing models.User
		if err := uc.db.Where("username = ?", *req.Username).First(&existing).Error; err == nil {
			utils.SendError(c, http.StatusConflict, "Username already taken!")
			return
		}
		updates["username"] = *req.Username
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}

	if len(updates) > 0 {
		if err := uc.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			zap.L().Error("failed to update profile", zap.Error(err))
			utils.SendError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	utils.SendMessage(c, http.StatusOK, "Profile updated successfully!")
}
