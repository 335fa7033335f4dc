package models

import (
	"time"
)

// Idea 创业想法，由外部抓取流程写入，本应用只回填 AISaaSIdea
type Idea struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Title                string    `gorm:"not null" json:"title"`
	ProblemStatement     string    `gorm:"type:text" json:"problem_statement"`
	SolutionOverview     string    `gorm:"type:text" json:"solution_overview"`
	OpportunityAnalysis  string    `gorm:"type:text" json:"opportunity_analysis"`
	FeasibilityScore     int       `gorm:"default:0" json:"feasibility_score"`
	MarketInsights       string    `gorm:"type:text" json:"market_insights"`
	CustomerPersona      string    `gorm:"type:text" json:"customer_persona"`
	DistributionStrategy string    `gorm:"type:text" json:"distribution_strategy"`
	PricingStrategy      string    `gorm:"type:text" json:"pricing_strategy"`
	Subreddit            string    `gorm:"size:100" json:"subreddit"`
	DataSource           string    `gorm:"size:50;index" json:"data_source"` // e.g. "Reddit"
	Status               string    `gorm:"size:50;index" json:"status"`      // e.g. "Backlog"
	Subject              string    `gorm:"size:50;index" json:"subject"`
	AISaaSIdea           string    `gorm:"column:ai_saas_idea;type:text" json:"ai_saas_idea"` // 空字符串表示尚未生成
	CreatedAt            time.Time `gorm:"index" json:"created_at"`
}

// HasConcept AI 概念是否已生成
func (i *Idea) HasConcept() bool {
	return i.AISaaSIdea != ""
}
