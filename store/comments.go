package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/socialapi/models"
)

// Comments is the gorm-backed CommentStore.
type Comments struct {
	db *gorm.DB
}

// NewComments creates a Comments store.
func NewComments(db *gorm.DB) *Comments {
	return &Comments{db: db}
}

// FindByID loads a comment with its author and parent post.
func (s *Comments) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Preload("User").Preload("Post").First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (s *Comments) Save(ctx context.Context, comment *models.Comment) error {
	return translate(s.db.WithContext(ctx).Omit("User", "Post").Save(comment).Error)
}

func (s *Comments) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAllByPostID lists a post's comments oldest first.
func (s *Comments) FindAllByPostID(ctx context.Context, postID uint, page Page) ([]models.Comment, error) {
	var comments []models.Comment
	q := s.db.WithContext(ctx).Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC")
	err := page.apply(q).Find(&comments).Error
	return comments, translate(err)
}

// FindAllByUsername lists one author's comments newest first.
func (s *Comments) FindAllByUsername(ctx context.Context, username string, page Page) ([]models.Comment, error) {
	var comments []models.Comment
	q := s.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("users.username = ?", username).
		Order("comments.created_at DESC").Order("comments.id DESC")
	err := page.apply(q).Find(&comments).Error
	return comments, translate(err)
}
