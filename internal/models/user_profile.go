package models

import (
	"time"
)

// UserProfile 用户资料扩展字段，姓名和头像由身份服务提供
type UserProfile struct {
	UserID    string    `gorm:"primaryKey;size:64" json:"user_id"`
	About     string    `gorm:"size:500" json:"about"`
	EmailPref bool      `gorm:"default:false" json:"email_pref"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All 返回需要迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&Idea{},
		&Comment{},
		&CommentLike{},
		&IdeaLike{},
		&SavedIdea{},
		&UserProfile{},
	}
}
