package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/api/internal/domain"
)

func TestMemoryStore_Users(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := NewMemoryStore().Users()

	user := &domain.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, users.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	assert.Error(t, users.Create(ctx, &domain.User{Name: "Other", Email: "ada@example.com"}))

	got, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, users.Delete(ctx, user.ID))
	_, err = users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.ErrorIs(t, users.Delete(ctx, user.ID), pgx.ErrNoRows)
}

func TestMemoryStore_ProfileUpsertKeepsEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	user := &domain.User{Name: "Ada", Email: "ada@example.com", Avatar: "a.png"}
	require.NoError(t, store.Users().Create(ctx, user))

	profiles := store.Profiles()
	assert.Error(t, profiles.Upsert(ctx, &domain.Profile{UserID: "missing", Status: "dev"}))

	require.NoError(t, profiles.Upsert(ctx, &domain.Profile{UserID: user.ID, Status: "dev"}))

	profile, err := profiles.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.User)
	assert.Equal(t, "Ada", profile.User.Name)
	assert.Equal(t, "a.png", profile.User.Avatar)

	profile.Experience = []domain.Experience{{ID: "e1", Title: "Engineer"}}
	require.NoError(t, profiles.Save(ctx, profile))

	require.NoError(t, profiles.Upsert(ctx, &domain.Profile{UserID: user.ID, Status: "lead"}))
	profile, err = profiles.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "lead", profile.Status)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "e1", profile.Experience[0].ID)

	require.NoError(t, profiles.DeleteByUserID(ctx, user.ID))
	_, err = profiles.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.ErrorIs(t, profiles.Save(ctx, profile), pgx.ErrNoRows)
}

func TestMemoryStore_PostsNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	posts := NewMemoryStore().Posts()

	first := &domain.Post{UserID: "u1", Text: "first"}
	second := &domain.Post{UserID: "u2", Text: "second"}
	require.NoError(t, posts.Create(ctx, first))
	require.NoError(t, posts.Create(ctx, second))

	list, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Text)
	assert.Equal(t, "first", list[1].Text)

	first.Likes = []domain.Like{{ID: "l1", UserID: "u2"}}
	require.NoError(t, posts.UpdateReactions(ctx, first))
	got, err := posts.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Likes, 1)

	removed, err := posts.DeleteByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.ErrorIs(t, posts.Delete(ctx, first.ID), pgx.ErrNoRows)
	require.NoError(t, posts.Delete(ctx, second.ID))
}
