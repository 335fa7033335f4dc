package models

import (
	"time"
)

// SavedIdea 收藏模型 - 用户收藏想法
type SavedIdea struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IdeaID    uint      `gorm:"not null;index;uniqueIndex:idx_saved_idea_user" json:"idea_id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_saved_idea_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
