package services

import (
	"context"
	"errors"
	"fmt"

	"vantage/internal/models"

	"gorm.io/gorm"
)

// IdeasPerPage 列表每页条数
const IdeasPerPage = 12

const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// IdeaFilter 列表筛选条件，空字段表示不过滤
type IdeaFilter struct {
	Status     string `form:"status"`
	DataSource string `form:"data_source"`
	Subject    string `form:"subject"`
	Sort       string `form:"sort"`
	Page       int    `form:"page"`
}

// IdeaPage 分页结果
type IdeaPage struct {
	Ideas      []models.Idea `json:"ideas"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
}

// FilterOptions 筛选下拉框的可选值
type FilterOptions struct {
	Statuses []string `json:"statuses"`
	Sources  []string `json:"sources"`
	Subjects []string `json:"subjects"`
}

type IdeaService struct {
	db *gorm.DB
}

func NewIdeaService(db *gorm.DB) *IdeaService {
	return &IdeaService{db: db}
}

func (s *IdeaService) filtered(ctx context.Context, f IdeaFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Idea{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DataSource != "" {
		q = q.Where("data_source = ?", f.DataSource)
	}
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	return q
}

// List 按条件筛选并分页，页码越界时夹到有效范围
func (s *IdeaService) List(ctx context.Context, f IdeaFilter) (*IdeaPage, error) {
	var total int64
	if err := s.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("统计想法失败: %w", err)
	}

	totalPages := int((total + IdeasPerPage - 1) / IdeasPerPage)
	if totalPages < 1 {
		totalPages = 1
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	order := "created_at DESC, id DESC"
	if f.Sort == SortOldest {
		order = "created_at ASC, id ASC"
	}

	ideas := []models.Idea{}
	if err := s.filtered(ctx, f).
		Order(order).
		Limit(IdeasPerPage).
		Offset((page - 1) * IdeasPerPage).
		Find(&ideas).Error; err != nil {
		return nil, fmt.Errorf("加载想法失败: %w", err)
	}

	return &IdeaPage{Ideas: ideas, Total: total, Page: page, TotalPages: totalPages}, nil
}

// FilterOptions 各筛选字段的去重非空取值
func (s *IdeaService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	opts := &FilterOptions{}
	for column, dest := range map[string]*[]string{
		"status":      &opts.Statuses,
		"data_source": &opts.Sources,
		"subject":     &opts.Subjects,
	} {
		if err := s.db.WithContext(ctx).Model(&models.Idea{}).
			Where(column+" IS NOT NULL AND "+column+" <> ''").
			Distinct(column).
			Order(column).
			Pluck(column, dest).Error; err != nil {
			return nil, fmt.Errorf("读取筛选项失败: %w", err)
		}
	}
	return opts, nil
}

func (s *IdeaService) Get(ctx context.Context, id uint) (*models.Idea, error) {
	var idea models.Idea
	if err := s.db.WithContext(ctx).First(&idea, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &idea, nil
}

// SavedIDs 用户收藏的想法 ID 集合
func (s *IdeaService) SavedIDs(ctx context.Context, userID string) (map[uint]bool, error) {
	saved := map[uint]bool{}
	if userID == "" {
		return saved, nil
	}
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.SavedIdea{}).
		Where("user_id = ?", userID).
		Pluck("idea_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		saved[id] = true
	}
	return saved, nil
}

// SavedIdeas 用户收藏的想法，最近收藏的在前
func (s *IdeaService) SavedIdeas(ctx context.Context, userID string) ([]models.Idea, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	ideas := []models.Idea{}
	if err := s.db.WithContext(ctx).
		Select("ideas.*").
		Joins("JOIN saved_ideas ON saved_ideas.idea_id = ideas.id").
		Where("saved_ideas.user_id = ?", userID).
		Order("saved_ideas.created_at DESC").Order("saved_ideas.id DESC").
		Find(&ideas).Error; err != nil {
		return nil, fmt.Errorf("加载收藏失败: %w", err)
	}
	return ideas, nil
}
