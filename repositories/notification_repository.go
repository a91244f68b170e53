package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/Suraj8267/Event-Aggregator-for-College-Students/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListForUser returns the user's newest notifications first.
func (r *NotificationRepository) ListForUser(userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)

	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error

	return notifications, err
}

func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error

	return count, err
}

// MarkRead flips the read flag on a single notification, scoped to its
// owner. Returns gorm.ErrRecordNotFound when the row is missing or owned
// by someone else.
func (r *NotificationRepository) MarkRead(id, userID uint) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *NotificationRepository) MarkAllRead(userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// DeleteReadOlderThan prunes read notifications created before the cutoff.
func (r *NotificationRepository) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})

	return result.RowsAffected, result.Error
}
