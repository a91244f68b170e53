package models

import "time"

type Event struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	Title                string     `json:"title" gorm:"not null;size:200"`
	Description          string     `json:"description" gorm:"not null;type:text"`
	Category             string     `json:"category" gorm:"not null;size:100"`
	Department           string     `json:"department" gorm:"not null;size:100"`
	Venue                string     `json:"venue" gorm:"not null;size:200"`
	DateTime             time.Time  `json:"date_time" gorm:"not null;index"`
	EndTime              time.Time  `json:"end_time" gorm:"not null"`
	MaxParticipants      *int       `json:"max_participants"`
	CurrentParticipants  int        `json:"current_participants" gorm:"default:0"`
	ImageURL             *string    `json:"image_url" gorm:"size:500"`
	ContactEmail         string     `json:"contact_email" gorm:"not null;size:120"`
	ContactPhone         *string    `json:"contact_phone" gorm:"size:20"`
	IsActive             bool       `json:"is_active" gorm:"default:true"`
	IsFeatured           bool       `json:"is_featured" gorm:"default:false"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	CreatedBy            uint       `json:"created_by" gorm:"not null;index"`
	CreatedAt            time.Time  `json:"created_at"`

	Organizer     User                `json:"-" gorm:"foreignKey:CreatedBy"`
	Registrations []EventRegistration `json:"-" gorm:"foreignKey:EventID"`
}

// CanRegister reports whether the registration window is still open.
// Events without a deadline are always open.
func (e *Event) CanRegister(now time.Time) bool {
	return e.RegistrationDeadline == nil || e.RegistrationDeadline.After(now)
}

// IsFull reports whether the capacity limit has been reached. Events
// without a max_participants value never fill up.
func (e *Event) IsFull() bool {
	return e.MaxParticipants != nil && e.CurrentParticipants >= *e.MaxParticipants
}

const RegistrationStatusRegistered = "registered"

type EventRegistration struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_registration_user_event"`
	EventID          uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_registration_user_event"`
	RegistrationDate time.Time `json:"registration_date" gorm:"autoCreateTime"`
	Status           string    `json:"status" gorm:"size:20"`
	Attended         bool      `json:"attended" gorm:"default:false"`

	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Event Event `json:"-" gorm:"foreignKey:EventID"`
}
