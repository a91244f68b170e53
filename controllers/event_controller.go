package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/middleware"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/models"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/services"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/utils"
)

const defaultEventImage = "/static/images/default-event.jpg"

// errEventFull signals a capacity-condition failure inside the
// registration transaction.
var errEventFull = errors.New("event is full")

type EventController struct {
	db            *gorm.DB
	jwtSecret     string
	notifications *services.NotificationService
	email         *services.EmailService
}

func NewEventController(db *gorm.DB, jwtSecret string, notifications *services.NotificationService, email *services.EmailService) *EventController {
	return &EventController{
		db:            db,
		jwtSecret:     jwtSecret,
		notifications: notifications,
		email:         email,
	}
}

// parseEventTime accepts RFC3339 timestamps, with a fallback for values
// lacking a timezone suffix.
func parseEventTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

func eventJSON(event *models.Event, now time.Time) gin.H {
	return gin.H{
		"id":                    event.ID,
		"title":                 event.Title,
		"description":           event.Description,
		"category":              event.Category,
		"department":            event.Department,
		"venue":                 event.Venue,
		"date_time":             event.DateTime,
		"end_time":              event.EndTime,
		"max_participants":      event.MaxParticipants,
		"current_participants":  event.CurrentParticipants,
		"image_url":             event.ImageURL,
		"contact_email":         event.ContactEmail,
		"contact_phone":         event.ContactPhone,
		"organizer":             event.Organizer.Username,
		"created_by":            event.CreatedBy,
		"is_featured":           event.IsFeatured,
		"registration_deadline": event.RegistrationDeadline,
		"can_register":          event.CanRegister(now),
	}
}

func (ec *EventController) GetEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	query := ec.db.Model(&models.Event{}).Where("is_active = ?", true)

	if category := c.Query("category"); category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	if department := c.Query("department"); department != "" && department != "all" {
		query = query.Where("department = ?", department)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(venue) LIKE ?",
			pattern, pattern, pattern)
	}
	if c.Query("upcoming") != "" {
		query = query.Where("date_time >= ?", time.Now().UTC())
	}
	if c.Query("featured") != "" {
		query = query.Where("is_featured = ?", true)
	}
	if organizer := c.Query("organizer"); organizer != "" {
		query = query.Where("created_by = ?", organizer)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		zap.L().Error("failed to count events", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var events []models.Event
	if err := query.Preload("Organizer").
		Order("date_time ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error; err != nil {
		zap.L().Error("failed to fetch events", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	now := time.Now().UTC()
	eventsData := make([]gin.H, 0, len(events))
	for i := range events {
		eventsData = append(eventsData, eventJSON(&events[i], now))
	}

	c.JSON(http.StatusOK, gin.H{
		"events":     eventsData,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// GetFeaturedEvents returns up to six upcoming featured events in a
// compact shape with descriptions truncated for card display.
func (ec *EventController) GetFeaturedEvents(c *gin.Context) {
	var events []models.Event
	if err := ec.db.
		Where("is_active = ? AND is_featured = ? AND date_time >= ?", true, true, time.Now().UTC()).
		Order("date_time ASC").
		Limit(6).
		Find(&events).Error; err != nil {
		zap.L().Error("failed to fetch featured events", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	eventsData := make([]gin.H, 0, len(events))
	for _, event := range events {
		description := event.Description
		if len(description) > 100 {
			description = description[:100] + "..."
		}

		eventsData = append(eventsData, gin.H{
			"id":                   event.ID,
			"title":                event.Title,
			"description":          description,
			"category":             event.Category,
			"date_time":            event.DateTime,
			"venue":                event.Venue,
			"image_url":            event.ImageURL,
			"current_participants": event.CurrentParticipants,
			"max_participants":     event.MaxParticipants,
		})
	}

	c.JSON(http.StatusOK, gin.H{"events": eventsData})
}

func (ec *EventController) GetEvent(c *gin.Context) {
	var event models.Event
	if err := ec.db.Preload("Organizer").First(&event, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found!")
		return
	}

	// Registration status is only derived when a valid token accompanies
	// the request; this endpoint stays public otherwise.
	isRegistered := false
	if header := c.GetHeader("Authorization"); header != "" {
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if userID, err := middleware.ParseToken(tokenString, ec.jwtSecret); err == nil {
			var count int64
			ec.db.Model(&models.EventRegistration{}).
				Where("user_id = ? AND event_id = ?", userID, event.ID).
				Count(&count)
			isRegistered = count > 0
		}
	}

	data := eventJSON(&event, time.Now().UTC())
	data["organizer_email"] = event.Organizer.Email
	data["is_active"] = event.IsActive
	data["is_registered"] = isRegistered

	c.JSON(http.StatusOK, gin.H{"event": data})
}

type CreateEventRequest struct {
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Category             string  `json:"category"`
	Department           string  `json:"department"`
	Venue                string  `json:"venue"`
	DateTime             string  `json:"date_time"`
	EndTime              string  `json:"end_time"`
	ContactEmail         string  `json:"contact_email"`
	ContactPhone         *string `json:"contact_phone"`
	MaxParticipants      *int    `json:"max_participants"`
	ImageURL             *string `json:"image_url"`
	IsFeatured           bool    `json:"is_featured"`
	RegistrationDeadline string  `json:"registration_deadline"`
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if !user.IsOrganizer {
		utils.SendError(c, http.StatusForbidden, "Only organizers can create events!")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body!")
		return
	}

	required := []struct {
		name  string
		value string
	}{
		{"title", req.Title},
		{"description", req.Description},
		{"category", req.Category},
		{"department", req.Department},
		{"venue", req.Venue},
		{"date_time", req.DateTime},
		{"end_time", req.EndTime},
		{"contact_email", req.ContactEmail},
	}
	for _, field := range required {
		if field.value == "" {
			utils.SendError(c, http.StatusBadRequest, field.name+" is required!")
			return
		}
	}

	dateTime, err := parseEventTime(req.DateTime)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "date_time must be a valid ISO timestamp!")
		return
	}
	endTime, err := parseEventTime(req.EndTime)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "end_time must be a valid ISO timestamp!")
		return
	}

	var deadline *time.Time
	if req.RegistrationDeadline != "" {
		parsed, err := parseEventTime(req.RegistrationDeadline)
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, "registration_deadline must be a valid ISO timestamp!")
			return
		}
		deadline = &parsed
	}

	imageURL := req.ImageURL
	if imageURL == nil {
		placeholder := defaultEventImage
		imageURL = &placeholder
	}

	event := models.Event{
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		Department:           req.Department,
		Venue:                req.Venue,
		DateTime:             dateTime,
		EndTime:              endTime,
		MaxParticipants:      req.MaxParticipants,
		ImageURL:             imageURL,
		ContactEmail:         req.ContactEmail,
		ContactPhone:         req.ContactPhone,
		IsActive:             true,
		IsFeatured:           req.IsFeatured,
		RegistrationDeadline: deadline,
		CreatedBy:            user.ID,
	}

	if err := ec.db.Create(&event).Error; err != nil {
		zap.L().Error("failed to create event", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	zap.S().Infof("New event created: %s by %s", event.Title, user.Username)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully!",
		"event": gin.H{
			"id":          event.ID,
			"title":       event.Title,
			"description": event.Description,
		},
	})
}

type UpdateEventRequest struct {
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Category             *string `json:"category"`
	Department           *string `json:"department"`
	Venue                *string `json:"venue"`
	DateTime             *string `json:"date_time"`
	EndTime              *string `json:"end_time"`
	ContactEmail         *string `json:"contact_email"`
	ContactPhone         *string `json:"contact_phone"`
	MaxParticipants      *int    `json:"max_participants"`
	ImageURL             *string `json:"image_url"`
	IsFeatured           *bool   `json:"is_featured"`
	RegistrationDeadline *string `json:"registration_deadline"`
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var event models.Event
	if err := ec.db.First(&event, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found!")
		return
	}

	if event.CreatedBy != user.ID && !user.IsAdmin {
		utils.SendError(c, http.StatusForbidden, "You can only edit your own events!")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body!")
		return
	}

	updates := map[string]interface{}{}

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Venue != nil {
		updates["venue"] = *req.Venue
	}
	if req.DateTime != nil {
		parsed, err := parseEventTime(*req.DateTime)
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, "date_time must be a valid ISO timestamp!")
			return
		}
		updates["date_time"] = parsed
	}
	if req.EndTime != nil {
		parsed, err := parseEventTime(*req.EndTime)
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, "end_time must be a valid ISO timestamp!")
			return
		}
		updates["end_time"] = parsed
	}
	if req.RegistrationDeadline != nil {
		// An empty string clears the deadline.
		if *req.RegistrationDeadline == "" {
			updates["registration_deadline"] = gorm.Expr("NULL")
		} else {
			parsed, err := parseEventTime(*req.RegistrationDeadline)
			if err != nil {
				utils.SendError(c, http.StatusBadRequest, "registration_deadline must be a valid ISO timestamp!")
				return
			}
			updates["registration_deadline"] = parsed
		}
	}
	if req.MaxParticipants != nil {
		updates["max_participants"] = *req.MaxParticipants
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if len(updates) > 0 {
		if err := ec.db.Model(&event).Updates(updates).Error; err != nil {
			zap.L().Error("failed to update event", zap.Error(err))
			utils.SendError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	zap.S().Infof("Event updated: %s by %s", event.Title, user.Username)

	utils.SendMessage(c, http.StatusOK, "Event updated successfully!")
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var event models.Event
	if err := ec.db.First(&event, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found!")
		return
	}

	if event.CreatedBy != user.ID && !user.IsAdmin {
		utils.SendError(c, http.StatusForbidden, "You can only delete your own events!")
		return
	}

	var registrations []models.EventRegistration
	if err := ec.db.Preload("User").Where("event_id = ?", event.ID).Find(&registrations).Error; err != nil {
		zap.L().Error("failed to fetch registrations", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	err := ec.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.EventRegistration{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		zap.L().Error("failed to delete event", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	// One cancellation notification per previously registered user.
	for _, registration := range registrations {
		if err := ec.notifications.Notify(registration.UserID,
			"Event Cancelled",
			fmt.Sprintf("The event %q has been cancelled.", event.Title),
			nil, models.NotificationTypeWarning); err != nil {
			zap.L().Warn("failed to create cancellation notification", zap.Error(err))
		}

		if ec.email.Enabled() {
			email := registration.User.Email
			username := registration.User.Username
			go func() {
				if err := ec.email.SendEventCancellation(email, username, event.Title); err != nil {
					zap.L().Warn("failed to send cancellation email", zap.Error(err))
				}
			}()
		}
	}

	zap.S().Infof("Event deleted: %s by %s", event.Title, user.Username)

	utils.SendMessage(c, http.StatusOK, "Event deleted successfully!")
}

func (ec *EventController) RegisterForEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var event models.Event
	if err := ec.db.First(&event, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found!")
		return
	}

	now := time.Now().UTC()

	if !event.IsActive {
		utils.SendError(c, http.StatusBadRequest, "This event is no longer active!")
		return
	}
	if event.DateTime.Before(now) {
		utils.SendError(c, http.StatusBadRequest, "This event has already occurred!")
		return
	}
	if event.RegistrationDeadline != nil && event.RegistrationDeadline.Before(now) {
		utils.SendError(c, http.StatusBadRequest, "Registration deadline has passed!")
		return
	}

	var existing int64
	ec.db.Model(&models.EventRegistration{}).
		Where("user_id = ? AND event_id = ?", user.ID, event.ID).
		Count(&existing)
	if existing > 0 {
		utils.SendError(c, http.StatusBadRequest, "You are already registered for this event!")
		return
	}

	if event.IsFull() {
		utils.SendError(c, http.StatusBadRequest, "This event is full!")
		return
	}

	// The capacity check and counter increment run as one conditional
	// update so concurrent registrations cannot push the counter past
	// max_participants.
	err := ec.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Event{}).
			Where("id = ? AND (max_participants IS NULL OR current_participants < max_participants)", event.ID).
			UpdateColumn("current_participants", gorm.Expr("current_participants + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errEventFull
		}

		registration := models.EventRegistration{
			UserID:  user.ID,
			EventID: event.ID,
			Status:  models.RegistrationStatusRegistered,
		}
		return tx.Create(&registration).Error
	})
	if err != nil {
		if err == errEventFull {
			utils.SendError(c, http.StatusBadRequest, "This event is full!")
			return
		}
		zap.L().Error("failed to register for event", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	eventID := event.ID
	if err := ec.notifications.Notify(user.ID,
		"Event Registration Successful",
		fmt.Sprintf("You have successfully registered for %q.", event.Title),
		&eventID, models.NotificationTypeSuccess); err != nil {
		zap.L().Warn("failed to create registration notification", zap.Error(err))
	}
	if err := ec.notifications.Notify(event.CreatedBy,
		"New Event Registration",
		fmt.Sprintf("%s has registered for your event %q.", user.Username, event.Title),
		&eventID, models.NotificationTypeInfo); err != nil {
		zap.L().Warn("failed to create organizer notification", zap.Error(err))
	}

	if ec.email.Enabled() {
		go func() {
			if err := ec.email.SendRegistrationConfirmation(user.Email, user.Username, event.Title, event.DateTime); err != nil {
				zap.L().Warn("failed to send confirmation email", zap.Error(err))
			}
		}()
	}

	zap.S().Infof("User %s registered for event %s", user.Username, event.Title)

	utils.SendMessage(c, http.StatusOK, "Successfully registered for the event!")
}

func (ec *EventController) UnregisterFromEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var event models.Event
	if err := ec.db.First(&event, "id = ?", c.Param("id")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found!")
		return
	}

	var registration models.EventRegistration
	if err := ec.db.Where("user_id = ? AND event_id = ?", user.ID, event.ID).First(&registration).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "You are not registered for this event!")
		return
	}

	err := ec.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&registration).Error; err != nil {
			return err
		}

		// Atomic decrement with a floor of zero; a counter already at
		// zero is left untouched.
		return tx.Model(&models.Event{}).
			Where("id = ? AND current_participants > 0", event.ID).
			UpdateColumn("current_participants", gorm.Expr("current_participants - 1")).Error
	})
	if err != nil {
		zap.L().Error("failed to unregister from event", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := ec.notifications.Notify(user.ID,
		"Event Unregistration",
		fmt.Sprintf("You have unregistered from %q.", event.Title),
		nil, models.NotificationTypeInfo); err != nil {
		zap.L().Warn("failed to create unregistration notification", zap.Error(err))
	}

	zap.S().Infof("User %s unregistered from event %s", user.Username, event.Title)

	utils.SendMessage(c, http.StatusOK, "Successfully unregistered from the event!")
}

func (ec *EventController) GetMyEvents(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var created []models.Event
	if err := ec.db.Where("created_by = ?", user.ID).Order("date_time DESC").Find(&created).Error; err != nil {
		zap.L().Error("failed to fetch created events", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var registrations []models.EventRegistration
	if err := ec.db.Preload("Event").Preload("Event.Organizer").
		Where("user_id = ?", user.ID).
		Order("registration_date DESC").
		Find(&registrations).Error; err != nil {
		zap.L().Error("failed to fetch registrations", zap.Error(err))
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	createdData := make([]gin.H, 0, len(created))
	for _, event := range created {
		createdData = append(createdData, gin.H{
			"id":                   event.ID,
			"title":                event.Title,
			"date_time":            event.DateTime,
			"venue":                event.Venue,
			"current_participants": event.CurrentParticipants,
			"max_participants":     event.MaxParticipants,
			"is_active":            event.IsActive,
			"category":             event.Category,
		})
	}

	registeredData := make([]gin.H, 0, len(registrations))
	for _, registration := range registrations {
		event := registration.Event
		registeredData = append(registeredData, gin.H{
			"id":                event.ID,
			"title":             event.Title,
			"date_time":         event.DateTime,
			"venue":             event.Venue,
			"organizer":         event.Organizer.Username,
			"contact_email":     event.ContactEmail,
			"category":          event.Category,
			"registration_date": registration.RegistrationDate,
			"attended":          registration.Attended,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"created_events":    createdData,
		"registered_events": registeredData,
	})
}

func (ec *EventController) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": []string{
		"Technical",
		"Cultural",
		"Sports",
		"Workshop",
		"Seminar",
		"Conference",
		"Hackathon",
		"Competition",
		"Social",
		"Other",
	}})
}

func (ec *EventController) GetDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"departments": []string{
		"Computer Science and Engineering",
		"Computer Science and Engineering (Artificial Intelligence and Machine Learning)",
		"Electrical Engineering",
		"Mechanical Engineering",
		"Civil Engineering",
		"Electronics and Communication Engineering",
		"All Departments",
	}})
}
