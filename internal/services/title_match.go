package services

import (
	"regexp"
	"strconv"
	"strings"

	"vantage/internal/models"
)

var (
	emphasisRe       = regexp.MustCompile(`[*_]+`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
	punctuationRe    = regexp.MustCompile(`[^a-z0-9 ]`)
	leadingOrdinalRe = regexp.MustCompile(`^(?:\d+ )+`)

	rankedLineRe  = regexp.MustCompile(`^\s*[*_]*(\d+)[.)](?:[*_]+\s*|\s+)(.*)$`)
	displayLeadRe = regexp.MustCompile(`^[^A-Za-z0-9]+`)
)

// prefixLen 前缀匹配比较的字符数
const prefixLen = 10

// NormalizeTitle 标题归一化：小写、去掉 markdown 强调、去标点、合并空白、去掉开头序号
func NormalizeTitle(s string) string {
	s = strings.ToLower(s)
	s = emphasisRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = punctuationRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = leadingOrdinalRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// MatchIdea 将排行榜标题关联到想法，依次尝试：精确、互相包含、前 10 个字符相同。
// 同一规则下按 ideas 的顺序取第一个。
func MatchIdea(title string, ideas []models.Idea) (uint, bool) {
	target := NormalizeTitle(title)
	if target == "" {
		return 0, false
	}

	normalized := make([]string, len(ideas))
	for i, idea := range ideas {
		normalized[i] = NormalizeTitle(idea.Title)
	}

	rules := []func(candidate string) bool{
		func(c string) bool { return c == target },
		func(c string) bool { return strings.Contains(c, target) || strings.Contains(target, c) },
		func(c string) bool { return prefix(c, prefixLen) == prefix(target, prefixLen) },
	}

	for _, rule := range rules {
		for i, candidate := range normalized {
			if candidate == "" {
				continue
			}
			if rule(candidate) {
				return ideas[i].ID, true
			}
		}
	}
	return 0, false
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// RankedEntry 排行榜中的一项；IdeaID 为空表示无法关联
type RankedEntry struct {
	Number        int    `json:"number"`
	Title         string `json:"title"`
	Justification string `json:"justification"`
	IdeaID        *uint  `json:"idea_id"`
	Header        bool   `json:"header,omitempty"`
	linkable      bool
}

// Linked 是否已关联到具体的想法
func (e RankedEntry) Linked() bool {
	return e.IdeaID != nil
}

// ParseRankedList 解析 "N. 标题: 理由" 格式的排行文本。
// 首个编号行之前的内容视为表头；没有冒号的编号行保留但不可关联。
func ParseRankedList(text string) []RankedEntry {
	var (
		entries  []RankedEntry
		preamble []string
		current  *RankedEntry
	)

	flush := func() {
		if current != nil {
			current.Justification = strings.TrimSpace(current.Justification)
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if m := rankedLineRe.FindStringSubmatch(line); m != nil {
			flush()
			n, _ := strconv.Atoi(m[1])
			current = newRankedEntry(n, m[2])
			continue
		}
		if trimmed == "" {
			continue
		}
		if current == nil {
			preamble = append(preamble, trimmed)
			continue
		}
		if current.Justification != "" {
			current.Justification += " "
		}
		current.Justification += trimmed
	}
	flush()

	if header := strings.TrimSpace(strings.Join(preamble, " ")); header != "" &&
		!strings.Contains(strings.ToLower(header), "analysis and ranking") {
		entries = append([]RankedEntry{{Title: header, Header: true}}, entries...)
	}
	return entries
}

func newRankedEntry(number int, rest string) *RankedEntry {
	entry := &RankedEntry{Number: number}
	title, justification, found := strings.Cut(rest, ":")
	entry.Title = cleanDisplayTitle(title)
	entry.Justification = justification
	entry.linkable = found && entry.Title != ""
	return entry
}

// cleanDisplayTitle 去掉强调符号和开头的非字母数字字符，保留标题内部的数字
func cleanDisplayTitle(s string) string {
	s = emphasisRe.ReplaceAllString(s, "")
	s = displayLeadRe.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(s)
}

// LinkEntries 为可关联的条目匹配想法 ID
func LinkEntries(entries []RankedEntry, ideas []models.Idea) []RankedEntry {
	out := make([]RankedEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		if !e.linkable {
			continue
		}
		if id, ok := MatchIdea(e.Title, ideas); ok {
			id := id
			out[i].IdeaID = &id
		}
	}
	return out
}
