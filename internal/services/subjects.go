package services

import (
	"context"
	"fmt"
	"strings"

	"vantage/internal/models"

	"gorm.io/gorm"
)

// subredditSubjects 子版块到主题的映射，键为小写
var subredditSubjects = map[string]string{
	"webdev": "Dev", "programming": "Dev", "devops": "Dev", "aws": "Dev",
	"uxdesign": "Dev", "nocode": "Dev", "shopify": "Dev", "sysadmin": "Dev",

	"finance": "Finance", "accounting": "Finance", "bookkeeping": "Finance",

	"marketing": "Marketing", "sales": "Marketing",

	"humanresources": "HR", "recruiting": "HR", "projectmanagement": "HR", "customersuccess": "HR",

	"paralegal": "Legal",

	"smallbusiness": "Business", "entrepreneur": "Business", "startups": "Business",
	"sidehustle": "Business", "indiehackers": "Business", "solopreneur": "Business", "agency": "Business",

	"saas": "SaaS", "microsaas": "SaaS",

	"productivity": "Productivity",

	"somebodymakethis": "Ideas", "appideas": "Ideas", "business_ideas": "Ideas",

	"b2b":        "B2B",
	"ecommerce":  "Ecommerce",
	"consulting": "Consulting",
	"freelance":  "Freelance",
}

type keywordGroup struct {
	keywords []string
	subject  string
}

// 按顺序匹配，先命中先得
var subjectKeywords = []keywordGroup{
	{[]string{"devops", "developer", "webdev", "programming", "code", "software", "engineer", "ux", "design", "sysadmin", "cloud", "aws", "shopify", "nocode"}, "Dev"},
	{[]string{"finance", "accounting", "bookkeeping", "invoice", "payment", "payroll", "tax"}, "Finance"},
	{[]string{"marketing", "sales", "advertising", "campaign", "leadgen"}, "Marketing"},
	{[]string{"hr", "recruit", "human resource", "project management", "customer success"}, "HR"},
	{[]string{"legal", "paralegal", "law", "contract"}, "Legal"},
	{[]string{"business", "startup", "entrepreneur", "sidehustle", "agency", "solopreneur", "indiehackers", "smallbusiness"}, "Business"},
	{[]string{"saas", "microsaas"}, "SaaS"},
	{[]string{"productivity", "workflow", "efficiency"}, "Productivity"},
	{[]string{"idea", "somebodymakethis", "appideas", "business_ideas"}, "Ideas"},
	{[]string{"b2b"}, "B2B"},
	{[]string{"ecommerce", "shopify"}, "Ecommerce"},
	{[]string{"consulting", "consultant"}, "Consulting"},
	{[]string{"freelance", "freelancer"}, "Freelance"},
}

// SubjectFor 推断想法主题：优先按子版块映射，未收录的子版块取首字母大写；
// 没有子版块时按标题和问题描述的关键词匹配，都不命中返回空串
func SubjectFor(subreddit, title, problem string) string {
	if sub := strings.TrimSpace(subreddit); sub != "" {
		if subject, ok := subredditSubjects[strings.ToLower(sub)]; ok {
			return subject
		}
		lower := strings.ToLower(sub)
		return strings.ToUpper(lower[:1]) + lower[1:]
	}

	text := strings.ToLower(title + " " + problem)
	for _, group := range subjectKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.subject
			}
		}
	}
	return ""
}

// BackfillSubjects 为主题为空的想法补上主题，返回更新条数
func BackfillSubjects(ctx context.Context, db *gorm.DB) (int, error) {
	logger := serviceLogger("subjects")

	var ideas []models.Idea
	if err := db.WithContext(ctx).
		Select("id", "subreddit", "title", "problem_statement").
		Where("subject IS NULL OR subject = ''").
		Find(&ideas).Error; err != nil {
		return 0, fmt.Errorf("加载想法失败: %w", err)
	}

	updated := 0
	for _, idea := range ideas {
		subject := SubjectFor(idea.Subreddit, idea.Title, idea.ProblemStatement)
		if subject == "" {
			continue
		}
		if err := db.WithContext(ctx).Model(&models.Idea{}).
			Where("id = ?", idea.ID).
			Update("subject", subject).Error; err != nil {
			logger.Error("update subject failed", "idea_id", idea.ID, "error", err)
			continue
		}
		updated++
	}
	logger.Info("subjects backfilled", "updated", updated, "scanned", len(ideas))
	return updated, nil
}
