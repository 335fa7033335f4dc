package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IdeaID    uint      `gorm:"not null;index" json:"idea_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
