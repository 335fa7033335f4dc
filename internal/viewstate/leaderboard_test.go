package viewstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowThenResolve(t *testing.T) {
	lb := NewLeaderboard()
	assert.False(t, lb.Visible())

	token := lb.Show()
	assert.Equal(t, Loading, lb.Status)
	assert.NotEmpty(t, token)

	assert.True(t, lb.Resolve(token))
	assert.Equal(t, Loaded, lb.Status)

	// 已加载时再次打开不会重新请求
	assert.Equal(t, token, lb.Show())
	assert.Equal(t, Loaded, lb.Status)
}

func TestStaleTokenIgnored(t *testing.T) {
	lb := NewLeaderboard()
	first := lb.Show()
	second := lb.Refresh()
	require.NotEqual(t, first, second)

	assert.False(t, lb.Resolve(first))
	assert.False(t, lb.Fail(first, "boom"))
	assert.Equal(t, Loading, lb.Status)

	assert.True(t, lb.Fail(second, "gateway down"))
	assert.Equal(t, Failed, lb.Status)
	assert.Equal(t, "gateway down", lb.Error)
}

func TestCollapseDropsInflight(t *testing.T) {
	lb := NewLeaderboard()
	token := lb.Show()
	lb.Collapse()

	assert.False(t, lb.Resolve(token))
	assert.Equal(t, Hidden, lb.Status)
	assert.Empty(t, lb.Token)
}

func TestRefreshFromError(t *testing.T) {
	lb := NewLeaderboard()
	token := lb.Show()
	lb.Fail(token, "x")

	next := lb.Refresh()
	assert.Equal(t, Loading, lb.Status)
	assert.Empty(t, lb.Error)
	assert.True(t, lb.Resolve(next))
}

func TestStoreRejectsStaleToken(t *testing.T) {
	store := NewStore(time.Hour)

	var first, second string
	store.Update("visitor-1", func(l *Leaderboard) { first = l.Show() })
	store.Update("visitor-1", func(l *Leaderboard) { second = l.Refresh() })

	var applied bool
	state := store.Update("visitor-1", func(l *Leaderboard) { applied = l.Resolve(first) })
	assert.False(t, applied)
	assert.Equal(t, Loading, state.Status)
	assert.Equal(t, second, state.Token)

	state = store.Update("visitor-1", func(l *Leaderboard) { applied = l.Resolve(second) })
	assert.True(t, applied)
	assert.Equal(t, Loaded, state.Status)

	assert.Equal(t, Hidden, store.Get("someone-else").Status)
}

func TestStoreReturnsCopies(t *testing.T) {
	store := NewStore(time.Hour)
	state := store.Update("v", func(l *Leaderboard) { l.Show() })
	state.Status = Failed

	assert.Equal(t, Loading, store.Get("v").Status)
}
