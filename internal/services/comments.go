package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vantage/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// MaxCommentLength 评论最大长度（字符）
const MaxCommentLength = 5000

type CommentService struct {
	db       *gorm.DB
	profiles ProfileLookup
	notifier ReplyNotifier
}

// NewCommentService profiles 为空时不附带作者资料
func NewCommentService(db *gorm.DB, profiles ProfileLookup) *CommentService {
	return &CommentService{db: db, profiles: profiles}
}

// WithNotifier 设置回复通知
func (s *CommentService) WithNotifier(n ReplyNotifier) *CommentService {
	s.notifier = n
	return s
}

// Thread 读取想法下的全部评论并组装成树
func (s *CommentService) Thread(ctx context.Context, ideaID uint, viewerID string) ([]*CommentNode, error) {
	var comments []models.Comment
	if err := s.db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("加载评论失败: %w", err)
	}
	if len(comments) == 0 {
		return []*CommentNode{}, nil
	}

	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	likeCounts, err := s.likeCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	viewerLikes, err := s.viewerLikes(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}

	tree := BuildCommentTree(comments, likeCounts, viewerLikes)
	s.attachAuthors(ctx, tree)
	return tree, nil
}

func (s *CommentService) likeCounts(ctx context.Context, ids []uint) (map[uint]int64, error) {
	var rows []struct {
		CommentID uint
		Total     int64
	}
	if err := s.db.WithContext(ctx).Model(&models.CommentLike{}).
		Select("comment_id, COUNT(*) AS total").
		Where("comment_id IN ?", ids).
		Group("comment_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("统计评论点赞失败: %w", err)
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CommentID] = r.Total
	}
	return counts, nil
}

func (s *CommentService) viewerLikes(ctx context.Context, ids []uint, viewerID string) (map[uint]bool, error) {
	liked := map[uint]bool{}
	if viewerID == "" {
		return liked, nil
	}
	var likedIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.CommentLike{}).
		Where("comment_id IN ? AND user_id = ?", ids, viewerID).
		Pluck("comment_id", &likedIDs).Error; err != nil {
		return nil, fmt.Errorf("读取点赞状态失败: %w", err)
	}
	for _, id := range likedIDs {
		liked[id] = true
	}
	return liked, nil
}

// attachAuthors 每个作者并发查询一次资料，失败的留空
func (s *CommentService) attachAuthors(ctx context.Context, tree []*CommentNode) {
	if s.profiles == nil {
		return
	}

	var authors []string
	seen := map[string]bool{}
	Walk(tree, func(n *CommentNode) {
		if !seen[n.UserID] {
			seen[n.UserID] = true
			authors = append(authors, n.UserID)
		}
	})

	found := make([]*Profile, len(authors))
	g, gctx := errgroup.WithContext(ctx)
	for i, uid := range authors {
		i, uid := i, uid
		g.Go(func() error {
			p, err := s.profiles.Profile(gctx, uid)
			if err != nil {
				serviceLogger("comments").Debug("author lookup failed", "user_id", uid, "error", err)
				return nil
			}
			found[i] = p
			return nil
		})
	}
	_ = g.Wait()

	byUser := make(map[string]*Profile, len(authors))
	for i, uid := range authors {
		if found[i] != nil {
			byUser[uid] = found[i]
		}
	}
	Walk(tree, func(n *CommentNode) {
		n.Author = byUser[n.UserID]
	})
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if len([]rune(content)) > MaxCommentLength {
		return "", fmt.Errorf("%w: 评论不能超过 %d 个字符", ErrTooLong, MaxCommentLength)
	}
	return content, nil
}

// Post 发表评论或回复
func (s *CommentService) Post(ctx context.Context, ideaID uint, parentID *uint, userID, content string) (*models.Comment, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	var ideaCount int64
	if err := s.db.WithContext(ctx).Model(&models.Idea{}).Where("id = ?", ideaID).Count(&ideaCount).Error; err != nil {
		return nil, err
	}
	if ideaCount == 0 {
		return nil, ErrNotFound
	}

	var parent *models.Comment
	if parentID != nil {
		parent = &models.Comment{}
		if err := s.db.WithContext(ctx).First(parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidParent
			}
			return nil, err
		}
		if parent.IdeaID != ideaID {
			return nil, ErrInvalidParent
		}
	}

	comment := &models.Comment{
		IdeaID:   ideaID,
		ParentID: parentID,
		UserID:   userID,
		Content:  content,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("保存评论失败: %w", err)
	}

	if parent != nil && s.notifier != nil {
		go s.notifier.NotifyReply(context.WithoutCancel(ctx), parent, comment)
	}
	return comment, nil
}

func (s *CommentService) ownComment(ctx context.Context, commentID uint, userID string) (*models.Comment, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}
	return &comment, nil
}

// Edit 修改自己的评论
func (s *CommentService) Edit(ctx context.Context, commentID uint, userID, content string) (*models.Comment, error) {
	comment, err := s.ownComment(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	content, err = normalizeContent(content)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(comment).Update("content", content).Error; err != nil {
		return nil, fmt.Errorf("更新评论失败: %w", err)
	}
	return comment, nil
}

// Delete 删除自己的评论，连同所有回复和这些评论上的点赞
func (s *CommentService) Delete(ctx context.Context, commentID uint, userID string) (*models.Comment, error) {
	comment, err := s.ownComment(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var siblings []models.Comment
		if err := tx.Select("id", "parent_id").Where("idea_id = ?", comment.IdeaID).Find(&siblings).Error; err != nil {
			return err
		}
		ids := subtreeIDs(comment.ID, siblings)

		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("删除评论失败: %w", err)
	}
	return comment, nil
}

// subtreeIDs 返回 root 及其所有后代的 ID
func subtreeIDs(root uint, comments []models.Comment) []uint {
	children := map[uint][]uint{}
	for _, c := range comments {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := []uint{root}
	visited := map[uint]bool{root: true}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if !visited[child] {
				visited[child] = true
				ids = append(ids, child)
			}
		}
	}
	return ids
}

// IdeaOf 评论所属的想法 ID
func (s *CommentService) IdeaOf(ctx context.Context, commentID uint) (uint, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Select("id", "idea_id").First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return comment.IdeaID, nil
}
