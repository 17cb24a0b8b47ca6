package services

import (
	"context"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/models"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/store"
)

// CommentService implements the comment workflows.
type CommentService struct {
	posts    store.PostStore
	comments store.CommentStore
	guard    *Guard
}

// NewCommentService creates a CommentService.
func NewCommentService(posts store.PostStore, comments store.CommentStore, guard *Guard) *CommentService {
	return &CommentService{posts: posts, comments: comments, guard: guard}
}

// Add attaches a comment by actor to an existing post.
func (s *CommentService) Add(ctx context.Context, postID uint, text string, actor session.Identity) (CommentView, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return CommentView{}, lookupErr(err, apperr.PostNotFound)
	}
	clean, err := cleanText(text, MinCommentText, MaxCommentText, apperr.CommentInvalidData)
	if err != nil {
		return CommentView{}, err
	}
	comment := &models.Comment{PostID: postID, UserID: actor.UserID, Text: clean}
	if err := s.comments.Save(ctx, comment); err != nil {
		return CommentView{}, dbErr(err)
	}
	comment.User = models.User{ID: actor.UserID, Username: actor.Username}
	return toCommentView(*comment), nil
}

// Update replaces the text of a comment. Only the author may update.
func (s *CommentService) Update(ctx context.Context, commentID uint, text string, actor session.Identity) (CommentView, error) {
	comment, err := s.guard.CommentForMutation(ctx, commentID, actor, ActionUpdate)
	if err != nil {
		return CommentView{}, err
	}
	clean, err := cleanText(text, MinCommentText, MaxCommentText, apperr.CommentInvalidData)
	if err != nil {
		return CommentView{}, err
	}
	comment.Text = clean
	if err := s.comments.Save(ctx, comment); err != nil {
		return CommentView{}, dbErr(err)
	}
	return toCommentView(*comment), nil
}

// Delete removes a comment and reports the id of its post. The author or the
// post owner may delete.
func (s *CommentService) Delete(ctx context.Context, commentID uint, actor session.Identity) (uint, error) {
	comment, err := s.guard.CommentForMutation(ctx, commentID, actor, ActionDelete)
	if err != nil {
		return 0, err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return 0, lookupErr(err, apperr.CommentNotFound)
	}
	return comment.PostID, nil
}

// ByPost lists a post's comments oldest first.
func (s *CommentService) ByPost(ctx context.Context, postID uint, page store.Page) ([]CommentSummary, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, lookupErr(err, apperr.PostNotFound)
	}
	comments, err := s.comments.FindAllByPostID(ctx, postID, page)
	if err != nil {
		return nil, dbErr(err)
	}
	out := make([]CommentSummary, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentSummary(c))
	}
	return out, nil
}

// ByUser lists one user's comments newest first.
func (s *CommentService) ByUser(ctx context.Context, username string, page store.Page) ([]CommentView, error) {
	comments, err := s.comments.FindAllByUsername(ctx, username, page)
	if err != nil {
		return nil, dbErr(err)
	}
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentView(c))
	}
	return out, nil
}
