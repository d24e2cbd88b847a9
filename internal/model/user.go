package model

import "time"

// Profile holds the optional community-facing fields of a user. Every field
// is independently sanitized and length-capped at the write boundary;
// absence is a valid state.
type Profile struct {
	Bio            string   `json:"bio,omitempty"`
	Location       string   `json:"location,omitempty"`
	LinkedInURL    string   `json:"linkedinUrl,omitempty"`
	TwitterURL     string   `json:"twitterUrl,omitempty"`
	InstagramURL   string   `json:"instagramUrl,omitempty"`
	Fields         []string `json:"fields,omitempty"`
	OpenToProjects bool     `json:"openToProjects,omitempty"`
}

// User represents an account.
type User struct {
	ID           string     `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role       `json:"role" gorm:"size:50;default:'user'"`
	IsActive     bool       `json:"isActive" gorm:"default:true"`
	Profile      Profile    `json:"profile" gorm:"serializer:json"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}
