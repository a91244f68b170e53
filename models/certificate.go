package models

import "time"

// Certificate holds completion metadata only; no document is rendered.
// One certificate per (user, event) pair, gated on an attended registration.
type Certificate struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_certificate_user_event"`
	EventID        uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_certificate_user_event"`
	IssueDate      time.Time `json:"issue_date" gorm:"autoCreateTime"`
	CertificateURL string    `json:"certificate_url" gorm:"size:500"`
	TemplateData   JSONMap   `json:"template_data" gorm:"type:json"`
	CreatedAt      time.Time `json:"created_at"`

	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Event Event `json:"-" gorm:"foreignKey:EventID"`
}
