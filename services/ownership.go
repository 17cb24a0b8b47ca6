package services

import (
	"context"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/models"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/store"
)

// Action is a kind of comment mutation.
type Action int

const (
	ActionUpdate Action = iota
	ActionDelete
)

// Guard decides whether an identity may mutate a post or comment.
type Guard struct {
	posts    store.PostStore
	comments store.CommentStore
}

// NewGuard creates a Guard.
func NewGuard(posts store.PostStore, comments store.CommentStore) *Guard {
	return &Guard{posts: posts, comments: comments}
}

// AssertCanMutatePost allows only the post's owner.
func (g *Guard) AssertCanMutatePost(post *models.Post, actor session.Identity) error {
	if post.UserID != actor.UserID {
		return apperr.New(apperr.PostAccessDenied)
	}
	return nil
}

// AssertCanMutateComment allows the author to update, and the author or the
// parent post's owner to delete.
func (g *Guard) AssertCanMutateComment(comment *models.Comment, actor session.Identity, action Action) error {
	if comment.UserID == actor.UserID {
		return nil
	}
	if action == ActionDelete && comment.Post.ID == comment.PostID && comment.Post.UserID == actor.UserID {
		return nil
	}
	return apperr.New(apperr.CommentAccessDenied)
}

// PostForMutation loads a post and checks ownership. A missing post is
// reported before any ownership decision.
func (g *Guard) PostForMutation(ctx context.Context, postID uint, actor session.Identity) (*models.Post, error) {
	post, err := g.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, apperr.PostNotFound)
	}
	if err := g.AssertCanMutatePost(post, actor); err != nil {
		return nil, err
	}
	return post, nil
}

// CommentForMutation loads a comment with its parent post and checks the
// rule for action.
func (g *Guard) CommentForMutation(ctx context.Context, commentID uint, actor session.Identity, action Action) (*models.Comment, error) {
	comment, err := g.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, lookupErr(err, apperr.CommentNotFound)
	}
	if err := g.AssertCanMutateComment(comment, actor, action); err != nil {
		return nil, err
	}
	return comment, nil
}
