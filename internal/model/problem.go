package model

import "time"

// Moderation statuses shared by problems, proposals and interests.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Urgency levels for submitted problems.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Location places a problem geographically. State is optional.
type Location struct {
	Country string `json:"country"`
	State   string `json:"state,omitempty"`
	City    string `json:"city"`
}

// Problem is a community-submitted issue awaiting moderation. The
// submitter's name and email are denormalized at submission time so the
// listing does not need a user join.
type Problem struct {
	ID               string     `json:"id" gorm:"type:char(36);primaryKey"`
	Title            string     `json:"title" gorm:"size:255;not null"`
	Description      string     `json:"description" gorm:"type:text"`
	Location         Location   `json:"location" gorm:"serializer:json"`
	KnowledgeField   string     `json:"knowledgeField" gorm:"size:100"`
	Urgency          string     `json:"urgency" gorm:"size:20;default:'medium'"`
	Status           string     `json:"status" gorm:"size:20;default:'pending';index"`
	SubmittedBy      string     `json:"submittedBy" gorm:"type:char(36);index"`
	SubmittedByName  string     `json:"submittedByName" gorm:"size:255"`
	SubmittedByEmail string     `json:"submittedByEmail" gorm:"size:255"`
	AdminNotes       string     `json:"adminNotes,omitempty" gorm:"type:text"`
	ReviewedBy       string     `json:"reviewedBy,omitempty" gorm:"type:char(36)"`
	ReviewedAt       *time.Time `json:"reviewedAt,omitempty"`
	SubmittedAt      time.Time  `json:"submittedAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
