package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/beauty_portal/internal/models"
)

func TestCreatePostTrimsContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.community.CreatePost(ctx, uuid.New(), " \n ")
	assert.Equal(t, "Post content is required", Message(err, false))

	p, err := f.community.CreatePost(ctx, uuid.New(), "  glowing  ")
	require.NoError(t, err)
	assert.Equal(t, "glowing", p.Content)
}

func TestToggleLikeTwiceRestores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author, fan := uuid.New(), uuid.New()
	p, err := f.community.CreatePost(ctx, author, "hello")
	require.NoError(t, err)

	liked, err := f.community.ToggleLike(ctx, fan, p.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	feed, err := f.community.Feed(ctx, fan)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, int64(1), feed[0].Likes)
	assert.True(t, feed[0].Liked)

	feed, err = f.community.Feed(ctx, author)
	require.NoError(t, err)
	assert.False(t, feed[0].Liked)

	liked, err = f.community.ToggleLike(ctx, fan, p.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Zero(t, f.count(t, &models.PostLike{}))

	_, err = f.community.ToggleLike(ctx, fan, uuid.Nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestThreadAndModeration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := uuid.New()
	p, err := f.community.CreatePost(ctx, user, "hello")
	require.NoError(t, err)

	_, err = f.community.CreateComment(ctx, user, p.ID, "  ")
	assert.Equal(t, "Comment content is required", Message(err, false))
	_, err = f.community.CreateComment(ctx, user, p.ID, "first")
	require.NoError(t, err)
	_, err = f.community.CreateComment(ctx, user, p.ID, "second")
	require.NoError(t, err)
	_, err = f.community.ToggleLike(ctx, user, p.ID)
	require.NoError(t, err)

	th, err := f.community.Thread(ctx, user, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", th.Content)
	assert.True(t, th.Liked)
	require.Len(t, th.Comments, 2)
	assert.ElementsMatch(t, []string{"first", "second"}, []string{th.Comments[0].Content, th.Comments[1].Content})

	_, err = f.community.Thread(ctx, user, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.community.DeletePost(ctx, p.ID))
	assert.Zero(t, f.count(t, &models.Post{}))
	assert.Zero(t, f.count(t, &models.Comment{}))
	assert.Zero(t, f.count(t, &models.PostLike{}))

	require.NoError(t, f.community.DeletePost(ctx, uuid.New()))
}
