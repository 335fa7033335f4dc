package services

import (
	"context"
	"testing"
	"time"

	"vantage/internal/models"
	"vantage/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleIdeaLikeRoundTrip(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	require.NoError(t, conn.Create(&models.Idea{ID: 42, Title: "Idea 42", CreatedAt: time.Now()}).Error)
	r := NewReconciler(conn)

	before, err := r.State(ctx, KindIdeaLike, 42, "user_a")
	require.NoError(t, err)
	assert.Equal(t, ToggleState{Count: 0, Active: false}, before)

	liked, err := r.Toggle(ctx, KindIdeaLike, 42, "user_a", false)
	require.NoError(t, err)
	assert.Equal(t, ToggleState{Count: 1, Active: true}, liked)

	unliked, err := r.Toggle(ctx, KindIdeaLike, 42, "user_a", true)
	require.NoError(t, err)
	assert.Equal(t, before, unliked)
}

func TestToggleRepeatedLikeNoDuplicates(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	require.NoError(t, conn.Create(&models.Idea{ID: 42, Title: "Idea 42", CreatedAt: time.Now()}).Error)
	r := NewReconciler(conn)

	for i := 0; i < 3; i++ {
		state, err := r.Toggle(ctx, KindIdeaLike, 42, "user_a", false)
		require.NoError(t, err)
		assert.Equal(t, ToggleState{Count: 1, Active: true}, state)
	}

	var rows int64
	require.NoError(t, conn.Model(&models.IdeaLike{}).Where("idea_id = ?", 42).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	// 其他用户的点赞独立计数
	state, err := r.Toggle(ctx, KindIdeaLike, 42, "user_b", false)
	require.NoError(t, err)
	assert.Equal(t, ToggleState{Count: 2, Active: true}, state)

	// 服务端状态为准：客户端误以为已点赞时执行删除
	state, err = r.Toggle(ctx, KindIdeaLike, 42, "user_c", true)
	require.NoError(t, err)
	assert.Equal(t, ToggleState{Count: 2, Active: false}, state)
}

func TestToggleUnauthenticated(t *testing.T) {
	conn := testutil.NewDB(t)
	r := NewReconciler(conn)

	_, err := r.Toggle(context.Background(), KindSave, 1, "", false)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestToggleMissingEntity(t *testing.T) {
	conn := testutil.NewDB(t)
	r := NewReconciler(conn)

	_, err := r.Toggle(context.Background(), KindCommentLike, 999, "user_a", false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Toggle(context.Background(), JoinKind("bogus"), 1, "user_a", false)
	assert.Error(t, err)
}

func TestToggleSaveAndCommentLike(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()
	idea := testutil.CreateIdea(t, conn, "Saved idea", time.Now())
	comment := testutil.CreateComment(t, conn, idea.ID, nil, "user_a", "hi", time.Now())
	r := NewReconciler(conn)

	saved, err := r.Toggle(ctx, KindSave, idea.ID, "user_b", false)
	require.NoError(t, err)
	assert.True(t, saved.Active)

	liked, err := r.Toggle(ctx, KindCommentLike, comment.ID, "user_b", false)
	require.NoError(t, err)
	assert.Equal(t, ToggleState{Count: 1, Active: true}, liked)

	anon, err := r.State(ctx, KindCommentLike, comment.ID, "")
	require.NoError(t, err)
	assert.Equal(t, ToggleState{Count: 1, Active: false}, anon)
}
