package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/models"
	"github.com/cppla/socialapi/session"
)

func TestAssertCanMutateComment(t *testing.T) {
	author := session.Identity{UserID: 1, Username: "author"}
	postOwner := session.Identity{UserID: 2, Username: "owner"}
	stranger := session.Identity{UserID: 3, Username: "stranger"}

	comment := &models.Comment{
		ID:     10,
		PostID: 5,
		UserID: author.UserID,
		Post:   models.Post{ID: 5, UserID: postOwner.UserID},
	}
	g := &Guard{}

	tests := []struct {
		name    string
		actor   session.Identity
		action  Action
		allowed bool
	}{
		{"author updates", author, ActionUpdate, true},
		{"author deletes", author, ActionDelete, true},
		{"post owner updates", postOwner, ActionUpdate, false},
		{"post owner deletes", postOwner, ActionDelete, true},
		{"stranger updates", stranger, ActionUpdate, false},
		{"stranger deletes", stranger, ActionDelete, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AssertCanMutateComment(comment, tt.actor, tt.action)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperr.CommentAccessDenied)
		})
	}
}

func TestAssertCanMutatePost(t *testing.T) {
	g := &Guard{}
	post := &models.Post{ID: 1, UserID: 9}

	assert.NoError(t, g.AssertCanMutatePost(post, session.Identity{UserID: 9}))
	assert.ErrorIs(t, g.AssertCanMutatePost(post, session.Identity{UserID: 8}), apperr.PostAccessDenied)
}

func TestExistenceCheckedBeforeOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stranger := f.signUp(t, "stranger")

	_, err := f.guard.PostForMutation(ctx, 404, stranger)
	assert.ErrorIs(t, err, apperr.PostNotFound)

	_, err = f.guard.CommentForMutation(ctx, 404, stranger, ActionDelete)
	assert.ErrorIs(t, err, apperr.CommentNotFound)

	err = f.posts.Delete(ctx, 404, stranger)
	assert.ErrorIs(t, err, apperr.PostNotFound)
}

func TestCommentDeleteByPostOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")
	bob := f.signUp(t, "bob1")
	carol := f.signUp(t, "carol")

	post, err := f.posts.Create(ctx, "alice's post", alice)
	require.NoError(t, err)
	c, err := f.comments.Add(ctx, post.PostID, "bob was here", bob)
	require.NoError(t, err)

	_, err = f.comments.Update(ctx, c.ID, "rewritten by alice", alice)
	assert.ErrorIs(t, err, apperr.CommentAccessDenied)

	_, err = f.comments.Delete(ctx, c.ID, carol)
	assert.ErrorIs(t, err, apperr.CommentAccessDenied)

	postID, err := f.comments.Delete(ctx, c.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, post.PostID, postID)

	_, err = f.comments.Delete(ctx, c.ID, alice)
	assert.ErrorIs(t, err, apperr.CommentNotFound)
}
