package services

import (
	"context"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/models"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/store"
)

// PostService implements the post workflows on top of the guard and ledger.
type PostService struct {
	posts    store.PostStore
	comments store.CommentStore
	likes    store.LikeStore
	guard    *Guard
}

// NewPostService creates a PostService.
func NewPostService(posts store.PostStore, comments store.CommentStore, likes store.LikeStore, guard *Guard) *PostService {
	return &PostService{posts: posts, comments: comments, likes: likes, guard: guard}
}

// Create stores a new post owned by actor.
func (s *PostService) Create(ctx context.Context, text string, actor session.Identity) (PostView, error) {
	clean, err := cleanText(text, MinPostText, MaxPostText, apperr.PostInvalidData)
	if err != nil {
		return PostView{}, err
	}
	post := &models.Post{UserID: actor.UserID, Text: clean}
	if err := s.posts.Save(ctx, post); err != nil {
		return PostView{}, dbErr(err)
	}
	post.User = models.User{ID: actor.UserID, Username: actor.Username}
	return newPostView(*post, nil, nil), nil
}

// Update replaces the text of a post owned by actor.
func (s *PostService) Update(ctx context.Context, postID uint, text string, actor session.Identity) (PostView, error) {
	post, err := s.guard.PostForMutation(ctx, postID, actor)
	if err != nil {
		return PostView{}, err
	}
	clean, err := cleanText(text, MinPostText, MaxPostText, apperr.PostInvalidData)
	if err != nil {
		return PostView{}, err
	}
	post.Text = clean
	if err := s.posts.Save(ctx, post); err != nil {
		return PostView{}, dbErr(err)
	}
	return s.view(ctx, *post, store.FirstPage(store.DefaultPageSize), store.FirstPage(store.DefaultPageSize))
}

// Delete removes a post owned by actor along with its comments and likes.
func (s *PostService) Delete(ctx context.Context, postID uint, actor session.Identity) error {
	if _, err := s.guard.PostForMutation(ctx, postID, actor); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return lookupErr(err, apperr.PostNotFound)
	}
	return nil
}

// Get returns a post with the requested pages of comments and likers.
func (s *PostService) Get(ctx context.Context, postID uint, commentPage, likePage store.Page) (PostView, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return PostView{}, lookupErr(err, apperr.PostNotFound)
	}
	return s.view(ctx, *post, commentPage, likePage)
}

// List returns a page of all posts, newest first.
func (s *PostService) List(ctx context.Context, page store.Page) ([]PostView, error) {
	posts, err := s.posts.FindAll(ctx, page)
	if err != nil {
		return nil, dbErr(err)
	}
	return s.views(ctx, posts)
}

// ListByUser returns a page of one user's posts, newest first.
func (s *PostService) ListByUser(ctx context.Context, username string, page store.Page) ([]PostView, error) {
	posts, err := s.posts.FindAllByUsername(ctx, username, page)
	if err != nil {
		return nil, dbErr(err)
	}
	return s.views(ctx, posts)
}

func (s *PostService) views(ctx context.Context, posts []models.Post) ([]PostView, error) {
	out := make([]PostView, 0, len(posts))
	embedded := store.FirstPage(embeddedPageSize)
	for _, p := range posts {
		v, err := s.view(ctx, p, embedded, embedded)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *PostService) view(ctx context.Context, post models.Post, commentPage, likePage store.Page) (PostView, error) {
	comments, err := s.comments.FindAllByPostID(ctx, post.ID, commentPage)
	if err != nil {
		return PostView{}, dbErr(err)
	}
	likedBy, err := s.likes.FindLikers(ctx, post.ID, likePage)
	if err != nil {
		return PostView{}, dbErr(err)
	}
	summaries := make([]CommentSummary, 0, len(comments))
	for _, c := range comments {
		summaries = append(summaries, toCommentSummary(c))
	}
	return newPostView(post, summaries, likedBy), nil
}
