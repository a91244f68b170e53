package models

import "time"

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// Notification is append-only; the only mutation after creation is the
// read-flag flip.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	EventID   *uint            `json:"event_id"`
	Title     string           `json:"title" gorm:"not null;size:200"`
	Message   string           `json:"message" gorm:"not null;type:text"`
	IsRead    bool             `json:"is_read" gorm:"default:false;index"`
	Type      NotificationType `json:"notification_type" gorm:"size:50"`
	CreatedAt time.Time        `json:"created_at"`
}
