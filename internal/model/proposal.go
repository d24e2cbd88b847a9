package model

import "time"

// SolutionProposal is a community answer to an approved problem. Proposals
// go through the same pending/approved/rejected moderation as problems.
type SolutionProposal struct {
	ID           string     `json:"id" gorm:"type:char(36);primaryKey"`
	ProblemID    string     `json:"problemId" gorm:"type:char(36);index"`
	ProblemTitle string     `json:"problemTitle" gorm:"size:255"`
	UserID       string     `json:"userId" gorm:"type:char(36);index"`
	UserName     string     `json:"userName" gorm:"size:255"`
	UserEmail    string     `json:"userEmail" gorm:"size:255"`
	Summary      string     `json:"summary" gorm:"size:500"`
	Details      string     `json:"details" gorm:"type:text"`
	Status       string     `json:"status" gorm:"size:20;default:'pending';index"`
	ReviewedBy   string     `json:"reviewedBy,omitempty" gorm:"type:char(36)"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	SubmittedAt  time.Time  `json:"submittedAt"`
}
