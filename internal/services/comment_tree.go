package services

import (
	"sort"

	"vantage/internal/models"
)

// CommentNode 评论树节点
type CommentNode struct {
	models.Comment
	Likes   int64          `json:"likes"`
	Liked   bool           `json:"liked"`
	Author  *Profile       `json:"author,omitempty"`
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree 将同一想法下的扁平评论列表组装成按时间排序的森林。
// 父评论不存在（或属于其他想法）的评论视为孤儿，连同其子孙一起丢弃。
func BuildCommentTree(comments []models.Comment, likeCounts map[uint]int64, viewerLikes map[uint]bool) []*CommentNode {
	ordered := make([]models.Comment, len(comments))
	copy(ordered, comments)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	byID := make(map[uint]*CommentNode, len(ordered))
	for _, c := range ordered {
		byID[c.ID] = &CommentNode{
			Comment: c,
			Likes:   likeCounts[c.ID],
			Liked:   viewerLikes[c.ID],
			Replies: []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0)
	for _, c := range ordered {
		node := byID[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := byID[*c.ParentID]
		if !ok || parent.IdeaID != c.IdeaID {
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}
	return roots
}

// Walk 深度优先遍历森林
func Walk(nodes []*CommentNode, fn func(*CommentNode)) {
	for _, n := range nodes {
		fn(n)
		Walk(n.Replies, fn)
	}
}
