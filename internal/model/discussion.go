package model

import "time"

// Discussion is a community forum thread.
type Discussion struct {
	ID         string    `json:"id" gorm:"type:char(36);primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Content    string    `json:"content" gorm:"type:text"`
	AuthorID   string    `json:"authorId" gorm:"type:char(36);index"`
	AuthorName string    `json:"authorName" gorm:"size:255"`
	ReplyCount int       `json:"replyCount" gorm:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DiscussionReply is a single answer inside a discussion thread.
type DiscussionReply struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey"`
	DiscussionID string    `json:"discussionId" gorm:"type:char(36);index"`
	Content      string    `json:"content" gorm:"type:text"`
	AuthorID     string    `json:"authorId" gorm:"type:char(36)"`
	AuthorName   string    `json:"authorName" gorm:"size:255"`
	CreatedAt    time.Time `json:"createdAt"`
}
