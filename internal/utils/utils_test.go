package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	c, err := NewCache(10)
	require.NoError(t, err)
	c.WithClock(func() time.Time { return now })

	c.SetUntil("k", "v", now.Add(time.Hour))
	assert.Equal(t, "v", c.Get("k"))

	now = now.Add(time.Hour)
	assert.Nil(t, c.Get("k"))
}

func TestCacheDelete(t *testing.T) {
	c, err := NewCache(10)
	require.NoError(t, err)
	c.Set("k", 1, time.Minute)
	c.Delete("k")
	assert.Nil(t, c.Get("k"))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, bad)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := string(RenderMarkdown("## Name\n\n<script>alert(1)</script>\n\n[site](https://example.com)"))
	assert.Contains(t, out, "<h2")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, `rel="nofollow noopener noreferrer"`)
}

func TestRenderMarkdownEmptyBodyStaysEmpty(t *testing.T) {
	out := string(RenderMarkdown("<script>alert(1)</script>[x](https://example.com)"))
	assert.NotContains(t, out, "<html>")
	assert.NotContains(t, out, "<body>")
	assert.Empty(t, strings.TrimSpace(out))

	assert.Equal(t, "", string(EnhanceHTMLContent("  \n ")))
}

func TestRenderCommentDropsImages(t *testing.T) {
	out := string(RenderComment("hello ![x](https://example.com/x.png) **bold**"))
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestExcerpt(t *testing.T) {
	out := Excerpt("**Remote teams** lose track of "+strings.Repeat("meetings ", 20), 30)
	assert.True(t, strings.HasPrefix(out, "Remote teams lose track of"))
	assert.True(t, strings.HasSuffix(out, "…"))
}
