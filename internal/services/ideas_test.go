package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"vantage/internal/models"
	"vantage/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedIdeas(t *testing.T, conn *gorm.DB, n int, mutate func(i int, idea *models.Idea)) []models.Idea {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ideas := make([]models.Idea, n)
	for i := range ideas {
		ideas[i] = models.Idea{
			Title:      fmt.Sprintf("Idea %02d", i),
			Status:     "Backlog",
			DataSource: "Reddit",
			CreatedAt:  start.Add(time.Duration(i) * time.Hour),
		}
		if mutate != nil {
			mutate(i, &ideas[i])
		}
	}
	require.NoError(t, conn.Create(&ideas).Error)
	return ideas
}

func titles(ideas []models.Idea) []string {
	out := make([]string, len(ideas))
	for i, idea := range ideas {
		out[i] = idea.Title
	}
	return out
}

func TestIdeaListPagination(t *testing.T) {
	conn := testutil.NewDB(t)
	seedIdeas(t, conn, 30, nil)
	svc := NewIdeaService(conn)
	ctx := context.Background()

	page, err := svc.List(ctx, IdeaFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(30), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Ideas, IdeasPerPage)
	assert.Equal(t, "Idea 29", page.Ideas[0].Title)

	last, err := svc.List(ctx, IdeaFilter{Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 3, last.Page)
	assert.Len(t, last.Ideas, 6)
	assert.Equal(t, "Idea 05", last.Ideas[0].Title)

	first, err := svc.List(ctx, IdeaFilter{Page: -4})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
}

func TestIdeaListSortAndFilters(t *testing.T) {
	conn := testutil.NewDB(t)
	seedIdeas(t, conn, 4, func(i int, idea *models.Idea) {
		if i%2 == 1 {
			idea.Status = "Validated"
			idea.Subject = "Dev"
		}
		if i == 3 {
			idea.DataSource = "HackerNews"
		}
	})
	svc := NewIdeaService(conn)
	ctx := context.Background()

	oldest, err := svc.List(ctx, IdeaFilter{Sort: SortOldest})
	require.NoError(t, err)
	assert.Equal(t, []string{"Idea 00", "Idea 01", "Idea 02", "Idea 03"}, titles(oldest.Ideas))

	validated, err := svc.List(ctx, IdeaFilter{Status: "Validated"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Idea 03", "Idea 01"}, titles(validated.Ideas))

	combined, err := svc.List(ctx, IdeaFilter{Subject: "Dev", DataSource: "Reddit"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Idea 01"}, titles(combined.Ideas))

	none, err := svc.List(ctx, IdeaFilter{Status: "Shipped"})
	require.NoError(t, err)
	assert.Empty(t, none.Ideas)
	assert.Equal(t, 1, none.TotalPages)
}

func TestIdeaFilterOptions(t *testing.T) {
	conn := testutil.NewDB(t)
	seedIdeas(t, conn, 3, func(i int, idea *models.Idea) {
		switch i {
		case 0:
			idea.Subject = "Finance"
		case 1:
			idea.Subject = "Dev"
			idea.Status = "Validated"
		}
	})

	opts, err := NewIdeaService(conn).FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Backlog", "Validated"}, opts.Statuses)
	assert.Equal(t, []string{"Reddit"}, opts.Sources)
	assert.Equal(t, []string{"Dev", "Finance"}, opts.Subjects)
}

func TestIdeaGet(t *testing.T) {
	conn := testutil.NewDB(t)
	idea := testutil.CreateIdea(t, conn, "Lookup", time.Now())
	svc := NewIdeaService(conn)

	got, err := svc.Get(context.Background(), idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lookup", got.Title)

	_, err = svc.Get(context.Background(), idea.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSavedIdeas(t *testing.T) {
	conn := testutil.NewDB(t)
	ideas := seedIdeas(t, conn, 3, nil)
	svc := NewIdeaService(conn)
	r := NewReconciler(conn)
	ctx := context.Background()

	_, err := r.Toggle(ctx, KindSave, ideas[0].ID, "user_a", false)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = r.Toggle(ctx, KindSave, ideas[2].ID, "user_a", false)
	require.NoError(t, err)
	_, err = r.Toggle(ctx, KindSave, ideas[1].ID, "user_b", false)
	require.NoError(t, err)

	saved, err := svc.SavedIdeas(ctx, "user_a")
	require.NoError(t, err)
	assert.Equal(t, []string{"Idea 02", "Idea 00"}, titles(saved))

	ids, err := svc.SavedIDs(ctx, "user_a")
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{ideas[0].ID: true, ideas[2].ID: true}, ids)

	anon, err := svc.SavedIDs(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, anon)

	_, err = svc.SavedIdeas(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
