package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/middleware"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/services"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/utils"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (nc *NotificationController) GetNotifications(c *gin.Context) {
	user := middleware.CurrentUser(c)

	unreadOnly := c.Query("unread_only") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}

	notifications, err := nc.notifications.ListForUser(user.ID, unreadOnly, limit)
	if err != nil {
		zap.L().Error("failed to fetch notifications", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	unreadCount, err := nc.notifications.UnreadCount(user.ID)
	if err != nil {
		zap.L().Error("failed to count unread notifications", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unreadCount,
	})
}

func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "Notification not found!")
		return
	}

	if err := nc.notifications.MarkRead(uint(id), user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "Notification not found!")
			return
		}
		zap.L().Error("failed to mark notification as read", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.SendMessage(c, http.StatusOK, "Notification marked as read!")
}

func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := nc.notifications.MarkAllRead(user.ID); err != nil {
		zap.L().Error("failed to mark notifications as read", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.SendMessage(c, http.StatusOK, "All notifications marked as read!")
}
