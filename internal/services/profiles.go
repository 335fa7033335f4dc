package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vantage/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxAboutLength 个人简介最大长度
const MaxAboutLength = 500

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get 读取资料扩展字段，没有记录时返回零值
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserProfile{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert 写入或覆盖资料扩展字段
func (s *ProfileService) Upsert(ctx context.Context, userID, about string, emailPref bool) (*models.UserProfile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	about = strings.TrimSpace(about)
	if len([]rune(about)) > MaxAboutLength {
		return nil, fmt.Errorf("%w: 简介不能超过 %d 个字符", ErrTooLong, MaxAboutLength)
	}

	profile := &models.UserProfile{UserID: userID, About: about, EmailPref: emailPref}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"about", "email_pref", "updated_at"}),
	}).Create(profile).Error; err != nil {
		return nil, fmt.Errorf("保存资料失败: %w", err)
	}
	return s.Get(ctx, userID)
}
