package services

import (
	"context"
	"strings"
	"testing"

	"vantage/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileGetDefaults(t *testing.T) {
	svc := NewProfileService(testutil.NewDB(t))

	profile, err := svc.Get(context.Background(), "user_a")
	require.NoError(t, err)
	assert.Equal(t, "user_a", profile.UserID)
	assert.Empty(t, profile.About)
	assert.False(t, profile.EmailPref)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestProfileUpsert(t *testing.T) {
	svc := NewProfileService(testutil.NewDB(t))
	ctx := context.Background()

	created, err := svc.Upsert(ctx, "user_a", "  Building tools for indie hackers ", true)
	require.NoError(t, err)
	assert.Equal(t, "Building tools for indie hackers", created.About)
	assert.True(t, created.EmailPref)

	updated, err := svc.Upsert(ctx, "user_a", "Changed my mind", false)
	require.NoError(t, err)
	assert.Equal(t, "Changed my mind", updated.About)
	assert.False(t, updated.EmailPref)

	_, err = svc.Upsert(ctx, "user_a", strings.Repeat("a", MaxAboutLength+1), true)
	assert.ErrorIs(t, err, ErrTooLong)

	_, err = svc.Upsert(ctx, "", "about", false)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
