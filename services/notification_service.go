package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/models"
	"github.com/Suraj8267/Event-Aggregator-for-College-Students/repositories"
)

// NotificationService is the single write path for notifications; every
// flow that informs a user (registration, cancellation, attendance) goes
// through Notify.
type NotificationService struct {
	repo *repositories.NotificationRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{repo: repositories.NewNotificationRepository(db)}
}

func (s *NotificationService) Notify(userID uint, title, message string, eventID *uint, notificationType models.NotificationType) error {
	notification := models.Notification{
		UserID:  userID,
		EventID: eventID,
		Title:   title,
		Message: message,
		Type:    notificationType,
	}

	return s.repo.Create(&notification)
}

func (s *NotificationService) ListForUser(userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	return s.repo.ListForUser(userID, unreadOnly, limit)
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.repo.UnreadCount(userID)
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	return s.repo.MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.repo.MarkAllRead(userID)
}

func (s *NotificationService) PruneRead(retention time.Duration) (int64, error) {
	return s.repo.DeleteReadOlderThan(time.Now().Add(-retention))
}
