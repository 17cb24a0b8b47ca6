package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/models"
	"github.com/cppla/socialapi/store"
)

func TestPostOwnershipScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")
	bob := f.signUp(t, "bob1")

	post, err := f.posts.Create(ctx, "alice writes", alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", post.AuthorUsername)

	assert.ErrorIs(t, f.posts.Delete(ctx, post.PostID, bob), apperr.PostAccessDenied)
	_, err = f.posts.Update(ctx, post.PostID, "bob edits", bob)
	assert.ErrorIs(t, err, apperr.PostAccessDenied)

	require.NoError(t, f.posts.Delete(ctx, post.PostID, alice))

	_, err = f.posts.Get(ctx, post.PostID, store.FirstPage(10), store.FirstPage(10))
	assert.ErrorIs(t, err, apperr.PostNotFound)
}

func TestDeletePostCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")
	bob := f.signUp(t, "bob1")

	post, err := f.posts.Create(ctx, "to be removed", alice)
	require.NoError(t, err)
	_, err = f.comments.Add(ctx, post.PostID, "first!", bob)
	require.NoError(t, err)
	require.NoError(t, f.ledger.Like(ctx, post.PostID, bob))

	require.NoError(t, f.posts.Delete(ctx, post.PostID, alice))

	var n int64
	require.NoError(t, f.db.Model(&models.Comment{}).Where("post_id = ?", post.PostID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.db.Model(&models.Like{}).Where("post_id = ?", post.PostID).Count(&n).Error)
	assert.Zero(t, n)

	byUser, err := f.comments.ByUser(ctx, "bob1", store.FirstPage(10))
	require.NoError(t, err)
	assert.Empty(t, byUser)
}

func TestGetPostEmbedsCommentsAndLikers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")
	bob := f.signUp(t, "bob1")

	post, err := f.posts.Create(ctx, "with extras", alice)
	require.NoError(t, err)
	for _, text := range []string{"one", "two", "three"} {
		_, err := f.comments.Add(ctx, post.PostID, text, bob)
		require.NoError(t, err)
	}
	require.NoError(t, f.ledger.Like(ctx, post.PostID, bob))

	view, err := f.posts.Get(ctx, post.PostID, store.FirstPage(2), store.FirstPage(10))
	require.NoError(t, err)
	assert.Equal(t, "with extras", view.Text)
	assert.Equal(t, "alice", view.AuthorUsername)
	require.Len(t, view.Comments, 2)
	assert.Equal(t, "one", view.Comments[0].Text)
	assert.Equal(t, "bob1", view.Comments[0].CommenterUsername)
	assert.Equal(t, []string{"bob1"}, view.LikedBy)

	list, err := f.posts.ListByUser(ctx, "alice", store.FirstPage(10))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Comments, 3)
}

func TestListEmbedsAtMostFive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")

	post, err := f.posts.Create(ctx, "busy post", alice)
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		_, err := f.comments.Add(ctx, post.PostID, "comment text", alice)
		require.NoError(t, err)
	}

	list, err := f.posts.List(ctx, store.FirstPage(10))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Comments, embeddedPageSize)
	assert.NotNil(t, list[0].LikedBy)
}

func TestPostTextIsSanitized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")

	post, err := f.posts.Create(ctx, "<b>bold</b> don't <script>alert(1)</script>", alice)
	require.NoError(t, err)
	assert.Equal(t, "bold don't", post.Text)

	_, err = f.posts.Create(ctx, "<script>x</script>", alice)
	assert.ErrorIs(t, err, apperr.PostInvalidData)

	encoded, err := f.posts.Create(ctx, "&lt;script&gt;alert(1)&lt;/script&gt; hello", alice)
	require.NoError(t, err)
	assert.Equal(t, "hello", encoded.Text)

	_, err = f.posts.Create(ctx, "&lt;script&gt;alert(1)&lt;/script&gt;", alice)
	assert.ErrorIs(t, err, apperr.PostInvalidData)
}

func TestUpdatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")

	post, err := f.posts.Create(ctx, "draft", alice)
	require.NoError(t, err)

	updated, err := f.posts.Update(ctx, post.PostID, "final", alice)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.Equal(t, post.PostID, updated.PostID)
	assert.Equal(t, "alice", updated.AuthorUsername)
}
