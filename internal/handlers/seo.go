package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"vantage/internal/services"
	"vantage/internal/utils"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct {
	svc *Services
}

func NewSEOHandler(svc *Services) *SEOHandler {
	return &SEOHandler{svc: svc}
}

// RobotsTxt 返回 robots.txt
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

# 禁止爬取API端点
Disallow: /api/

Sitemap: %s/sitemap.xml
`, h.svc.SiteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapLimit 单个 sitemap 收录的想法上限
const sitemapLimit = 500

func (h *SEOHandler) recentIdeas(c *gin.Context, n int) ([]ideaLink, error) {
	page, err := h.svc.Ideas.List(c.Request.Context(), services.IdeaFilter{Sort: services.SortNewest})
	if err != nil {
		return nil, err
	}
	links := make([]ideaLink, 0, n)
	for p := 1; p <= page.TotalPages && len(links) < n; p++ {
		if p > 1 {
			page, err = h.svc.Ideas.List(c.Request.Context(), services.IdeaFilter{Sort: services.SortNewest, Page: p})
			if err != nil {
				return nil, err
			}
		}
		for _, idea := range page.Ideas {
			if len(links) == n {
				break
			}
			links = append(links, ideaLink{
				ID:        idea.ID,
				Title:     idea.Title,
				Summary:   utils.Excerpt(idea.ProblemStatement, 280),
				CreatedAt: idea.CreatedAt,
			})
		}
	}
	return links, nil
}

type ideaLink struct {
	ID        uint
	Title     string
	Summary   string
	CreatedAt time.Time
}

// SitemapXML 动态生成 sitemap.xml
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	now := time.Now().Format("2006-01-02")
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.svc.SiteURL + "/", LastMod: now, ChangeFreq: "daily", Priority: 1.0},
		},
	}

	ideas, err := h.recentIdeas(c, sitemapLimit)
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	for _, idea := range ideas {
		// 越新的想法优先级越高
		daysSinceCreated := time.Since(idea.CreatedAt).Hours() / 24
		priority, changefreq := 0.6, "weekly"
		if daysSinceCreated < 7 {
			priority, changefreq = 0.8, "daily"
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/ideas/%d", h.svc.SiteURL, idea.ID),
			LastMod:    idea.CreatedAt.Format("2006-01-02"),
			ChangeFreq: changefreq,
			Priority:   priority,
		})
	}

	writeXML(c, "application/xml; charset=utf-8", set)
}

func writeXML(c *gin.Context, contentType string, v interface{}) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, contentType, append([]byte(xml.Header), out...))
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// RSSFeed 最新 20 个想法的 RSS 2.0 feed
func (h *SEOHandler) RSSFeed(c *gin.Context) {
	ideas, err := h.recentIdeas(c, 20)
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:         "Vantage",
			Link:          h.svc.SiteURL,
			Description:   "Startup ideas mined from real problems",
			LastBuildDate: time.Now().Format(time.RFC1123Z),
		},
	}
	for _, idea := range ideas {
		link := fmt.Sprintf("%s/ideas/%d", h.svc.SiteURL, idea.ID)
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       idea.Title,
			Link:        link,
			Description: idea.Summary,
			PubDate:     idea.CreatedAt.Format(time.RFC1123Z),
			GUID:        link,
		})
	}

	writeXML(c, "application/rss+xml; charset=utf-8", feed)
}
