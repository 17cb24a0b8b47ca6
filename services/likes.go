package services

import (
	"context"
	"errors"
	"time"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/models"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/store"
)

// LikeLedger keeps at most one like per (user, post).
type LikeLedger struct {
	posts store.PostStore
	likes store.LikeStore
	now   func() time.Time
}

// NewLikeLedger creates a LikeLedger.
func NewLikeLedger(posts store.PostStore, likes store.LikeStore) *LikeLedger {
	return &LikeLedger{posts: posts, likes: likes, now: time.Now}
}

func (l *LikeLedger) requirePost(ctx context.Context, postID uint) error {
	if _, err := l.posts.FindByID(ctx, postID); err != nil {
		return lookupErr(err, apperr.PostNotFound)
	}
	return nil
}

// Like records that actor likes the post. Liking twice is a conflict.
func (l *LikeLedger) Like(ctx context.Context, postID uint, actor session.Identity) error {
	if err := l.requirePost(ctx, postID); err != nil {
		return err
	}
	exists, err := l.likes.Exists(ctx, actor.UserID, postID)
	if err != nil {
		return dbErr(err)
	}
	if exists {
		return alreadyLiked(postID, actor)
	}

	err = l.likes.Insert(ctx, &models.Like{UserID: actor.UserID, PostID: postID, LikedAt: l.now()})
	if errors.Is(err, store.ErrDuplicateKey) {
		return alreadyLiked(postID, actor)
	}
	return dbErr(err)
}

// Unlike removes actor's like. Unliking a post that is not liked is reported
// as LIKE_NOT_FOUND.
func (l *LikeLedger) Unlike(ctx context.Context, postID uint, actor session.Identity) error {
	if err := l.requirePost(ctx, postID); err != nil {
		return err
	}
	removed, err := l.likes.Delete(ctx, actor.UserID, postID)
	if err != nil {
		return dbErr(err)
	}
	if !removed {
		return apperr.Newf(apperr.LikeNotFound, "Post with id %d is not liked by user %s", postID, actor.Username)
	}
	return nil
}

// LikersOf returns the usernames that liked the post, oldest like first.
func (l *LikeLedger) LikersOf(ctx context.Context, postID uint, page store.Page) ([]string, error) {
	if err := l.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	names, err := l.likes.FindLikers(ctx, postID, page)
	if err != nil {
		return nil, dbErr(err)
	}
	return names, nil
}

func alreadyLiked(postID uint, actor session.Identity) error {
	return apperr.Newf(apperr.LikeAlreadyExists, "Post with id %d is already liked by user %s", postID, actor.Username)
}
