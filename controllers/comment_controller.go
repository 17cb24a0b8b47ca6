package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/socialapi/services"
	"github.com/cppla/socialapi/utils"
)

// CommentController exposes comment endpoints.
type CommentController struct {
	comments *services.CommentService
	cache    *utils.Cache
}

// NewCommentController creates a new CommentController instance. cache may be nil.
func NewCommentController(comments *services.CommentService, cache *utils.Cache) *CommentController {
	return &CommentController{comments: comments, cache: cache}
}

type addCommentRequest struct {
	PostID uint   `json:"postId" binding:"required,gt=0"`
	Text   string `json:"text" binding:"required,min=2,max=128"`
}

type updateCommentRequest struct {
	Text string `json:"text" binding:"required,min=2,max=128"`
}

// AddComment attaches a comment by the caller to a post.
func (c *CommentController) AddComment(ctx *gin.Context) {
	var req addCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.FailBind(ctx, err)
		return
	}
	actor, err := identity(ctx)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	comment, err := c.comments.Add(ctx.Request.Context(), req.PostID, req.Text, actor)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	c.cache.InvalidateByPrefix(postCachePrefix(req.PostID))
	utils.Created(ctx, gin.H{"comment": comment})
}

// UpdateComment replaces the text of the caller's comment.
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	var req updateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.FailBind(ctx, err)
		return
	}
	actor, err := identity(ctx)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	comment, err := c.comments.Update(ctx.Request.Context(), id, req.Text, actor)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	c.cache.InvalidateByPrefix(postCachePrefix(comment.PostID))
	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment removes a comment. The author or the post owner may delete.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
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

	postID, err := c.comments.Delete(ctx.Request.Context(), id, actor)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	c.cache.InvalidateByPrefix(postCachePrefix(postID))
	utils.Success(ctx, gin.H{"deleted": id})
}

// ListPostComments returns a post's comments, oldest first.
func (c *CommentController) ListPostComments(ctx *gin.Context) {
	postID, err := parseID(ctx, "postId")
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	page := parsePagination(ctx, "page", "page_size")
	comments, err := c.comments.ByPost(ctx.Request.Context(), postID, page)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"items":      comments,
		"pagination": gin.H{"page": page.Number, "page_size": page.Limit()},
	})
}

// ListUserComments returns one user's comments, newest first.
func (c *CommentController) ListUserComments(ctx *gin.Context) {
	page := parsePagination(ctx, "page", "page_size")
	comments, err := c.comments.ByUser(ctx.Request.Context(), ctx.Param("username"), page)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"items":      comments,
		"pagination": gin.H{"page": page.Number, "page_size": page.Limit()},
	})
}
