package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
	// 评论只允许基础格式
	commentPolicy = bluemonday.StrictPolicy()
)

func init() {
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
	commentPolicy.AllowElements("p", "br", "strong", "em", "code", "pre", "ul", "ol", "li", "blockquote", "a")
	commentPolicy.AllowStandardURLs()
	commentPolicy.AllowAttrs("href").OnElements("a")
	commentPolicy.RequireNoFollowOnLinks(true)
}

func toHTML(source string) ([]byte, bool) {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// RenderMarkdown 渲染 AI 生成的产品方案
func RenderMarkdown(source string) template.HTML {
	raw, ok := toHTML(source)
	if !ok {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return EnhanceHTMLContent(string(policy.SanitizeBytes(raw)))
}

// RenderComment 渲染评论内容
func RenderComment(source string) template.HTML {
	raw, ok := toHTML(source)
	if !ok {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return EnhanceHTMLContent(string(commentPolicy.SanitizeBytes(raw)))
}

// Excerpt 把 markdown 转成 n 个字符以内的纯文本摘要
func Excerpt(source string, n int) string {
	raw, ok := toHTML(source)
	if !ok {
		return source
	}
	return PlainExcerpt(string(policy.SanitizeBytes(raw)), n)
}
