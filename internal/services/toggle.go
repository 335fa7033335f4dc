package services

import (
	"context"
	"fmt"

	"vantage/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JoinKind 用户与实体之间的关联类型
type JoinKind string

const (
	KindIdeaLike    JoinKind = "idea_like"
	KindCommentLike JoinKind = "comment_like"
	KindSave        JoinKind = "save"
)

// ToggleState 切换后从数据库重新读取的权威状态
type ToggleState struct {
	Count  int64 `json:"count"`
	Active bool  `json:"active"`
}

type joinTable struct {
	column string
	model  func() interface{}
	row    func(entityID uint, userID string) interface{}
	target func() interface{}
}

var joinTables = map[JoinKind]joinTable{
	KindIdeaLike: {
		column: "idea_id",
		model:  func() interface{} { return &models.IdeaLike{} },
		row: func(id uint, uid string) interface{} {
			return &models.IdeaLike{IdeaID: id, UserID: uid}
		},
		target: func() interface{} { return &models.Idea{} },
	},
	KindCommentLike: {
		column: "comment_id",
		model:  func() interface{} { return &models.CommentLike{} },
		row: func(id uint, uid string) interface{} {
			return &models.CommentLike{CommentID: id, UserID: uid}
		},
		target: func() interface{} { return &models.Comment{} },
	},
	KindSave: {
		column: "idea_id",
		model:  func() interface{} { return &models.SavedIdea{} },
		row: func(id uint, uid string) interface{} {
			return &models.SavedIdea{IdeaID: id, UserID: uid}
		},
		target: func() interface{} { return &models.Idea{} },
	},
}

// Reconciler 维护「当前用户是否对实体 X 操作过」的布尔状态。
// 去重完全依赖数据库唯一索引，这里不做额外加锁。
type Reconciler struct {
	db *gorm.DB
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{db: db}
}

// Toggle currentlyActive 为 true 时删除关联行，否则插入一行，随后重新读取状态
func (r *Reconciler) Toggle(ctx context.Context, kind JoinKind, entityID uint, userID string, currentlyActive bool) (ToggleState, error) {
	if userID == "" {
		return ToggleState{}, ErrUnauthenticated
	}
	table, ok := joinTables[kind]
	if !ok {
		return ToggleState{}, fmt.Errorf("unknown join kind %q", kind)
	}

	tx := r.db.WithContext(ctx)

	var exists int64
	if err := tx.Model(table.target()).Where("id = ?", entityID).Count(&exists).Error; err != nil {
		return ToggleState{}, err
	}
	if exists == 0 {
		return ToggleState{}, ErrNotFound
	}

	if currentlyActive {
		if err := tx.Where(table.column+" = ? AND user_id = ?", entityID, userID).Delete(table.model()).Error; err != nil {
			return ToggleState{}, fmt.Errorf("delete %s: %w", kind, err)
		}
	} else {
		// 重复插入由唯一索引吸收
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(table.row(entityID, userID)).Error; err != nil {
			return ToggleState{}, fmt.Errorf("insert %s: %w", kind, err)
		}
	}

	return r.State(ctx, kind, entityID, userID)
}

// State 读取实体的关联数量以及 userID 是否在其中
func (r *Reconciler) State(ctx context.Context, kind JoinKind, entityID uint, userID string) (ToggleState, error) {
	table, ok := joinTables[kind]
	if !ok {
		return ToggleState{}, fmt.Errorf("unknown join kind %q", kind)
	}

	tx := r.db.WithContext(ctx)
	var state ToggleState
	if err := tx.Model(table.model()).Where(table.column+" = ?", entityID).Count(&state.Count).Error; err != nil {
		return ToggleState{}, err
	}
	if userID == "" {
		return state, nil
	}

	var mine int64
	if err := tx.Model(table.model()).Where(table.column+" = ? AND user_id = ?", entityID, userID).Count(&mine).Error; err != nil {
		return ToggleState{}, err
	}
	state.Active = mine > 0
	return state, nil
}
