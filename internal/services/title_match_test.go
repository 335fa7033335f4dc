package services

import (
	"testing"

	"vantage/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	cases := map[string]string{
		"**AI Meeting Notes Summarizer**": "ai meeting notes summarizer",
		"3. AI   Meeting\tNotes":          "ai meeting notes",
		"  _Invoice_ Chaser!!  ":          "invoice chaser",
		"1. 2. Nested ordinals":           "nested ordinals",
		"3D Printing Marketplace":         "3d printing marketplace",
		"100 Days of Code Tracker":        "days of code tracker",
		"":                                "",
		"***":                             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTitle(in), in)
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	inputs := []string{
		"3. **AI Meeting Notes Summarizer**",
		"Hello, World -- again",
		"1.2.3 4 5 Go",
		"  __a__ __b__ ",
		"Tabs\tand\nnewlines",
		"Ünïcode Tîtle",
		"42",
	}
	for _, in := range inputs {
		once := NormalizeTitle(in)
		assert.Equal(t, once, NormalizeTitle(once), in)
	}
}

var matchIdeas = []models.Idea{
	{ID: 7, Title: "AI Meeting Notes Summarizer"},
	{ID: 8, Title: "Freelancer Invoice Chaser"},
	{ID: 9, Title: "Podcast Clip Generator for Creators"},
}

func TestMatchIdeaExample(t *testing.T) {
	entries := LinkEntries(ParseRankedList("3. **AI Meeting Notes Summarizer**: Strong retention potential."), matchIdeas)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].IdeaID)
	assert.Equal(t, uint(7), *entries[0].IdeaID)
	assert.Equal(t, 3, entries[0].Number)
	assert.Equal(t, "Strong retention potential.", entries[0].Justification)
}

func TestMatchIdeaUnrelated(t *testing.T) {
	entries := LinkEntries(ParseRankedList("5. Something Completely Unrelated: ..."), matchIdeas)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Linked())
	assert.Equal(t, "Something Completely Unrelated", entries[0].Title)
}

func TestMatchIdeaRuleOrder(t *testing.T) {
	ideas := []models.Idea{
		{ID: 1, Title: "Invoice Chaser Pro Edition"},
		{ID: 2, Title: "Invoice Chaser"},
	}

	// 精确匹配优先于更早出现的包含匹配
	id, ok := MatchIdea("invoice chaser", ideas)
	assert.True(t, ok)
	assert.Equal(t, uint(2), id)

	// 包含匹配：取抓取顺序里的第一个
	id, ok = MatchIdea("Chaser", ideas)
	assert.True(t, ok)
	assert.Equal(t, uint(1), id)

	// 前 10 个字符相同
	id, ok = MatchIdea("Podcast Clip Tool", matchIdeas)
	assert.True(t, ok)
	assert.Equal(t, uint(9), id)
}

func TestMatchIdeaEmptyNeverMatches(t *testing.T) {
	_, ok := MatchIdea("***", matchIdeas)
	assert.False(t, ok)

	_, ok = MatchIdea("anything", []models.Idea{{ID: 1, Title: "!!!"}})
	assert.False(t, ok)
}

func TestParseRankedList(t *testing.T) {
	text := `Here's my analysis and ranking of the ideas:

1. **Freelancer Invoice Chaser**: Clear pain, easy to sell.
   Recurring revenue is likely.
2) Podcast Clip Generator: Creators pay for time savings.
**3.** AI Meeting Notes Summarizer: Crowded but large.
4. Honourable mentions without reasons
5. Budget 2.0 Planner: Fine.`

	entries := LinkEntries(ParseRankedList(text), matchIdeas)
	require.Len(t, entries, 5)

	assert.Equal(t, 1, entries[0].Number)
	assert.Equal(t, "Freelancer Invoice Chaser", entries[0].Title)
	assert.Equal(t, "Clear pain, easy to sell. Recurring revenue is likely.", entries[0].Justification)
	require.NotNil(t, entries[0].IdeaID)
	assert.Equal(t, uint(8), *entries[0].IdeaID)

	assert.Equal(t, 2, entries[1].Number)
	require.NotNil(t, entries[1].IdeaID)
	assert.Equal(t, uint(9), *entries[1].IdeaID)

	assert.Equal(t, 3, entries[2].Number)
	require.NotNil(t, entries[2].IdeaID)
	assert.Equal(t, uint(7), *entries[2].IdeaID)

	// 没有冒号：保留但不可关联
	assert.Equal(t, "Honourable mentions without reasons", entries[3].Title)
	assert.False(t, entries[3].Linked())

	assert.Equal(t, "Budget 2.0 Planner", entries[4].Title)
	assert.False(t, entries[4].Linked())
}

func TestParseRankedListKeepsUnexpectedHeader(t *testing.T) {
	entries := ParseRankedList("Top picks for today\n1. Freelancer Invoice Chaser: Good.")
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Header)
	assert.Equal(t, 0, entries[0].Number)
	assert.Equal(t, "Top picks for today", entries[0].Title)

	linked := LinkEntries(entries, matchIdeas)
	assert.False(t, linked[0].Linked())
	assert.True(t, linked[1].Linked())
}

func TestParseRankedListEmpty(t *testing.T) {
	assert.Empty(t, ParseRankedList(""))
	assert.Empty(t, ParseRankedList("Analysis and ranking:\n\n"))
}
