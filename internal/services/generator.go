package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"vantage/internal/models"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Generation 概念生成结果
type Generation struct {
	Concept string `json:"saas_idea"`
	Model   string `json:"model,omitempty"`
	Cached  bool   `json:"cached"`
}

// Generator 先读缓存字段，未命中时走模型回退链并持久化第一个成功结果
type Generator struct {
	db      *gorm.DB
	gateway Gateway
	models  []string
	flights singleflight.Group
}

func NewGenerator(db *gorm.DB, gateway Gateway, models []string) *Generator {
	return &Generator{
		db:      db,
		gateway: gateway,
		models:  append([]string(nil), models...),
	}
}

// Generate 返回想法的 AI 概念。
// 同一进程内的并发请求共享一次生成；跨进程时通过条件更新保证先写者胜出。
func (g *Generator) Generate(ctx context.Context, ideaID uint) (*Generation, error) {
	idea, err := g.loadIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.HasConcept() {
		return &Generation{Concept: idea.AISaaSIdea, Cached: true}, nil
	}

	// 共享的生成不跟随发起者的取消，由网关客户端的超时兜底
	shared := context.WithoutCancel(ctx)
	v, err, _ := g.flights.Do(strconv.FormatUint(uint64(ideaID), 10), func() (interface{}, error) {
		return g.generate(shared, idea)
	})
	if err != nil {
		return nil, err
	}
	gen := *v.(*Generation)
	return &gen, nil
}

func (g *Generator) generate(ctx context.Context, idea *models.Idea) (*Generation, error) {
	logger := serviceLogger("generator")
	prompt := BuildConceptPrompt(idea.ProblemStatement)

	result, err := RunFallbackChain(ctx, g.models, func(ctx context.Context, model string) (string, error) {
		return g.gateway.Complete(ctx, model, prompt)
	})
	if err != nil {
		logger.Error("concept generation failed", "idea_id", idea.ID, "error", err)
		return nil, err
	}
	winner, _ := result.Winner()

	res := g.db.WithContext(ctx).Model(&models.Idea{}).
		Where("id = ? AND (ai_saas_idea IS NULL OR ai_saas_idea = '')", idea.ID).
		Update("ai_saas_idea", winner.Content)
	if res.Error != nil {
		return nil, fmt.Errorf("保存概念失败: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		// 其他实例已先写入，以已保存的结果为准
		stored, err := g.loadIdea(ctx, idea.ID)
		if err != nil {
			return nil, err
		}
		if stored.HasConcept() {
			logger.Info("concept already stored by another writer", "idea_id", idea.ID)
			return &Generation{Concept: stored.AISaaSIdea, Cached: true}, nil
		}
		return nil, ErrNotFound
	}

	logger.Info("concept generated", "idea_id", idea.ID, "model", winner.Model)
	return &Generation{Concept: winner.Content, Model: winner.Model}, nil
}

func (g *Generator) loadIdea(ctx context.Context, ideaID uint) (*models.Idea, error) {
	var idea models.Idea
	if err := g.db.WithContext(ctx).First(&idea, ideaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &idea, nil
}
