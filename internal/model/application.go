package model

import "time"

// Application statuses.
const (
	ApplicationPending   = "pending"
	ApplicationReviewing = "reviewing"
	ApplicationApproved  = "approved"
	ApplicationRejected  = "rejected"
)

// Application is a problem-solver candidacy submitted through the public site.
type Application struct {
	ID            string     `json:"id" gorm:"type:char(36);primaryKey"`
	Name          string     `json:"name" gorm:"size:255;not null"`
	Email         string     `json:"email" gorm:"size:255;not null"`
	Phone         string     `json:"phone,omitempty" gorm:"size:50"`
	Country       string     `json:"country,omitempty" gorm:"size:100"`
	City          string     `json:"city,omitempty" gorm:"size:100"`
	Motivation    string     `json:"motivation,omitempty" gorm:"type:text"`
	Experience    string     `json:"experience,omitempty" gorm:"type:text"`
	Fields        []string   `json:"fields,omitempty" gorm:"serializer:json"`
	Status        string     `json:"status" gorm:"size:20;default:'pending';index"`
	ReviewNotes   string     `json:"reviewNotes,omitempty" gorm:"type:text"`
	Score         int        `json:"score,omitempty"`
	InterviewDate string     `json:"interviewDate,omitempty" gorm:"size:50"`
	Priority      string     `json:"priority,omitempty" gorm:"size:20"`
	Tags          []string   `json:"tags,omitempty" gorm:"serializer:json"`
	ReviewedBy    string     `json:"reviewedBy,omitempty" gorm:"size:255"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	SubmittedAt   time.Time  `json:"submittedAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ApplicationStats summarizes applications by status for the admin panel.
type ApplicationStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Reviewing int `json:"reviewing"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
}
