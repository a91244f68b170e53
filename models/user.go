package models

import "time"

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null;size:80"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null;size:120"`
	Password       string    `json:"-" gorm:"not null;size:120"`
	Department     string    `json:"department" gorm:"not null;size:100"`
	Year           string    `json:"year" gorm:"not null;size:20"`
	IsOrganizer    bool      `json:"is_organizer" gorm:"default:false"`
	IsAdmin        bool      `json:"is_admin" gorm:"default:false"`
	ProfilePicture *string   `json:"profile_picture" gorm:"size:500"`
	CreatedAt      time.Time `json:"created_at"`

	EventsCreated []Event             `json:"-" gorm:"foreignKey:CreatedBy"`
	Registrations []EventRegistration `json:"-" gorm:"foreignKey:UserID"`
	Notifications []Notification      `json:"-" gorm:"foreignKey:UserID"`
}

// Summary is the public shape returned by the auth endpoints.
func (u *User) Summary() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"department":   u.Department,
		"year":         u.Year,
		"is_organizer": u.IsOrganizer,
		"is_admin":     u.IsAdmin,
	}
}
