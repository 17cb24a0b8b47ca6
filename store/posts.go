package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/socialapi/models"
)

// Posts is the gorm-backed PostStore.
type Posts struct {
	db *gorm.DB
}

// NewPosts creates a Posts store.
func NewPosts(db *gorm.DB) *Posts {
	return &Posts{db: db}
}

// FindByID loads a post with its author.
func (s *Posts) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *Posts) Save(ctx context.Context, post *models.Post) error {
	return translate(s.db.WithContext(ctx).Omit("User").Save(post).Error)
}

// Delete removes the post together with its likes and comments.
func (s *Posts) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// FindAll lists posts newest first.
func (s *Posts) FindAll(ctx context.Context, page Page) ([]models.Post, error) {
	var posts []models.Post
	q := s.db.WithContext(ctx).Preload("User").Order("created_at DESC").Order("id DESC")
	err := page.apply(q).Find(&posts).Error
	return posts, translate(err)
}

// FindAllByUsername lists one author's posts newest first.
func (s *Posts) FindAllByUsername(ctx context.Context, username string, page Page) ([]models.Post, error) {
	var posts []models.Post
	q := s.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("users.username = ?", username).
		Order("posts.created_at DESC").Order("posts.id DESC")
	err := page.apply(q).Find(&posts).Error
	return posts, translate(err)
}
