package model

import "time"

// Project categories form a closed set.
const (
	CategorySolutions = "solutions"
	CategoryProgress  = "progress"
	CategoryImpact    = "impact"
)

// ValidCategory reports whether the category is one of the three valid values.
func ValidCategory(category string) bool {
	switch category {
	case CategorySolutions, CategoryProgress, CategoryImpact:
		return true
	}
	return false
}

// ProjectMetrics holds the impact numbers shown on the public site.
type ProjectMetrics struct {
	LivesImpacted      int `json:"livesImpacted"`
	VolunteersInvolved int `json:"volunteersInvolved"`
}

// Project represents a foundation initiative.
type Project struct {
	ID             string         `json:"id" gorm:"type:char(36);primaryKey"`
	Title          string         `json:"title" gorm:"size:255;not null"`
	Description    string         `json:"description" gorm:"type:text"`
	Category       string         `json:"category" gorm:"size:50;index"`
	Status         string         `json:"status" gorm:"size:50;default:'active'"`
	ImageURL       string         `json:"imageUrl" gorm:"size:500"`
	Progress       int            `json:"progress"` // 0..100, clamped on write
	CompletionDate string         `json:"completionDate,omitempty" gorm:"size:50"`
	Metrics        ProjectMetrics `json:"metrics" gorm:"serializer:json"`
	IsPublished    bool           `json:"isPublished" gorm:"default:true"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
