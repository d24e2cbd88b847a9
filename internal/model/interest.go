package model

import "time"

// ProjectInterest records a community user volunteering for a project.
// Approved interests surface on the admin project dashboard.
type ProjectInterest struct {
	ID           string     `json:"id" gorm:"type:char(36);primaryKey"`
	ProjectID    string     `json:"projectId" gorm:"type:char(36);index"`
	ProjectTitle string     `json:"projectTitle" gorm:"size:255"`
	UserID       string     `json:"userId" gorm:"type:char(36);index"`
	UserName     string     `json:"userName" gorm:"size:255"`
	UserEmail    string     `json:"userEmail" gorm:"size:255"`
	Message      string     `json:"message,omitempty" gorm:"type:text"`
	Status       string     `json:"status" gorm:"size:20;default:'pending';index"`
	ReviewedBy   string     `json:"reviewedBy,omitempty" gorm:"type:char(36)"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	SubmittedAt  time.Time  `json:"submittedAt"`
}
