package model

import "time"

// Post represents a blog entry. Unpublished posts are drafts visible only
// through the admin panel.
type Post struct {
	ID          string    `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Excerpt     string    `json:"excerpt" gorm:"size:500"`
	Content     string    `json:"content" gorm:"type:longtext"`
	Category    string    `json:"category" gorm:"size:100"`
	Author      string    `json:"author" gorm:"size:255"`
	ImageURL    string    `json:"imageUrl" gorm:"size:500"`
	Tags        []string  `json:"tags" gorm:"serializer:json"`
	IsPublished bool      `json:"isPublished"`
	ReadingTime int       `json:"readingTime,omitempty" gorm:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
