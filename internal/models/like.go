package models

import (
	"time"
)

// IdeaLike 用户点赞想法，(idea_id, user_id) 唯一
type IdeaLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IdeaID    uint      `gorm:"not null;index;uniqueIndex:idx_idea_like_user" json:"idea_id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_idea_like_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike 用户点赞评论，(comment_id, user_id) 唯一
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;index;uniqueIndex:idx_comment_like_user" json:"comment_id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_comment_like_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
