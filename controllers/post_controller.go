package controllers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/services"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/store"
	"github.com/cppla/socialapi/utils"
)

// PostController exposes posts and likes.
type PostController struct {
	posts  *services.PostService
	ledger *services.LikeLedger
	cache  *utils.Cache
}

// NewPostController creates a new PostController instance. cache may be nil.
func NewPostController(posts *services.PostService, ledger *services.LikeLedger, cache *utils.Cache) *PostController {
	return &PostController{posts: posts, ledger: ledger, cache: cache}
}

type postRequest struct {
	Text string `json:"text" binding:"required,min=2,max=512"`
}

func postCachePrefix(id uint) string {
	return fmt.Sprintf("cache:post:detail:%d:", id)
}

func postCacheKey(id uint, comments, likes store.Page) string {
	return fmt.Sprintf("%sc=%d,%d:l=%d,%d", postCachePrefix(id), comments.Number, comments.Limit(), likes.Number, likes.Limit())
}

// CreatePost allows authenticated users to create new posts.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.FailBind(ctx, err)
		return
	}
	actor, err := identity(ctx)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	post, err := p.posts.Create(ctx.Request.Context(), req.Text, actor)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Created(ctx, gin.H{"post": post})
}

// UpdatePost replaces the text of a post owned by the caller.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.FailBind(ctx, err)
		return
	}
	actor, err := identity(ctx)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	post, err := p.posts.Update(ctx.Request.Context(), id, req.Text, actor)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	p.cache.InvalidateByPrefix(postCachePrefix(id))
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post owned by the caller with its comments and likes.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	actor, err := identity(ctx)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	if err := p.posts.Delete(ctx.Request.Context(), id, actor); err != nil {
		utils.Fail(ctx, err)
		return
	}
	p.cache.InvalidateByPrefix(postCachePrefix(id))
	utils.Success(ctx, gin.H{"deleted": id})
}

// GetPost returns a post with pages of its comments and likers.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	commentPage := parsePagination(ctx, "commentPage", "commentPageSize")
	likePage := parsePagination(ctx, "likePage", "likePageSize")

	key := postCacheKey(id, commentPage, likePage)
	var cached services.PostView
	if p.cache.GetJSON(key, &cached) {
		utils.Success(ctx, gin.H{"post": cached})
		return
	}

	post, err := p.posts.Get(ctx.Request.Context(), id, commentPage, likePage)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	p.cache.SetJSON(key, post)
	utils.Success(ctx, gin.H{"post": post})
}

// ListPosts returns all posts, newest first.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page := parsePagination(ctx, "page", "page_size")
	posts, err := p.posts.List(ctx.Request.Context(), page)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"items":      posts,
		"pagination": gin.H{"page": page.Number, "page_size": page.Limit()},
	})
}

// ListUserPosts returns one user's posts, newest first.
func (p *PostController) ListUserPosts(ctx *gin.Context) {
	page := parsePagination(ctx, "page", "page_size")
	posts, err := p.posts.ListByUser(ctx.Request.Context(), ctx.Param("username"), page)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"items":      posts,
		"pagination": gin.H{"page": page.Number, "page_size": page.Limit()},
	})
}

// LikePost records a like by the caller.
func (p *PostController) LikePost(ctx *gin.Context) {
	p.likeOp(ctx, "like", p.ledger.Like)
}

// UnlikePost removes the caller's like.
func (p *PostController) UnlikePost(ctx *gin.Context) {
	p.likeOp(ctx, "unlike", p.ledger.Unlike)
}

func (p *PostController) likeOp(ctx *gin.Context, op string, fn func(context.Context, uint, session.Identity) error) {
	id, err := parseID(ctx, "id")
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	actor, err := identity(ctx)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	if err := fn(ctx.Request.Context(), id, actor); err != nil {
		outcome := "error"
		if k, ok := apperr.KindOf(err); ok {
			outcome = k.Name()
		}
		utils.LikeOperations.WithLabelValues(op, outcome).Inc()
		utils.Fail(ctx, err)
		return
	}
	utils.LikeOperations.WithLabelValues(op, "ok").Inc()
	p.cache.InvalidateByPrefix(postCachePrefix(id))
	utils.Success(ctx, gin.H{"postId": id, "liked": op == "like"})
}

// ListLikers returns the usernames that liked a post, oldest like first.
func (p *PostController) ListLikers(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	page := parsePagination(ctx, "page", "page_size")
	names, err := p.ledger.LikersOf(ctx.Request.Context(), id, page)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"likedBy":    names,
		"pagination": gin.H{"page": page.Number, "page_size": page.Limit()},
	})
}
