package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/store"
)

func TestCommentLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")
	bob := f.signUp(t, "bob1")

	post, err := f.posts.Create(ctx, "discuss", alice)
	require.NoError(t, err)

	c, err := f.comments.Add(ctx, post.PostID, "hi there", bob)
	require.NoError(t, err)
	assert.Equal(t, post.PostID, c.PostID)
	assert.Equal(t, "bob1", c.CommenterUsername)

	updated, err := f.comments.Update(ctx, c.ID, "hi again", bob)
	require.NoError(t, err)
	assert.Equal(t, "hi again", updated.Text)

	byPost, err := f.comments.ByPost(ctx, post.PostID, store.FirstPage(10))
	require.NoError(t, err)
	require.Len(t, byPost, 1)
	assert.Equal(t, "hi again", byPost[0].Text)

	byUser, err := f.comments.ByUser(ctx, "bob1", store.FirstPage(10))
	require.NoError(t, err)
	require.Len(t, byUser, 1)

	_, err = f.comments.Delete(ctx, c.ID, bob)
	require.NoError(t, err)
}

func TestCommentOnMissingPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.signUp(t, "bob1")

	_, err := f.comments.Add(ctx, 12345, "hello", bob)
	assert.ErrorIs(t, err, apperr.PostNotFound)

	_, err = f.comments.ByPost(ctx, 12345, store.FirstPage(10))
	assert.ErrorIs(t, err, apperr.PostNotFound)
}

func TestCommentTextLimits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")
	post, err := f.posts.Create(ctx, "limits", alice)
	require.NoError(t, err)

	_, err = f.comments.Add(ctx, post.PostID, "x", alice)
	assert.ErrorIs(t, err, apperr.CommentInvalidData)

	long := make([]byte, MaxCommentText+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = f.comments.Add(ctx, post.PostID, string(long), alice)
	assert.ErrorIs(t, err, apperr.CommentInvalidData)
}
