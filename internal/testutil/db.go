// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"vantage/internal/db"
	"vantage/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB 返回迁移完成的内存 sqlite 连接
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)

	// 内存库只在单个连接内可见
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(conn))
	return conn
}

// CreateIdea 写入一条想法，createdAt 用于控制排序
func CreateIdea(t *testing.T, conn *gorm.DB, title string, createdAt time.Time) *models.Idea {
	t.Helper()

	idea := &models.Idea{
		Title:            title,
		ProblemStatement: "Problem behind " + title,
		DataSource:       "Reddit",
		Status:           "Backlog",
		CreatedAt:        createdAt,
	}
	require.NoError(t, conn.Create(idea).Error)
	return idea
}

// CreateComment 写入一条评论
func CreateComment(t *testing.T, conn *gorm.DB, ideaID uint, parentID *uint, userID, content string, createdAt time.Time) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		IdeaID:    ideaID,
		ParentID:  parentID,
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
	}
	require.NoError(t, conn.Create(comment).Error)
	return comment
}
