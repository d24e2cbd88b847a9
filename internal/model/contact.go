package model

import "time"

// Contact message statuses.
const (
	ContactNew      = "new"
	ContactRead     = "read"
	ContactReplied  = "replied"
	ContactArchived = "archived"
)

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID          string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Email       string    `json:"email" gorm:"size:255;not null"`
	Subject     string    `json:"subject" gorm:"size:255"`
	Message     string    `json:"message" gorm:"type:text"`
	Status      string    `json:"status" gorm:"size:20;default:'new';index"`
	SubmittedAt time.Time `json:"submittedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
