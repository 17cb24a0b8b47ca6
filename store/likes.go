package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/socialapi/models"
)

// Likes is the gorm-backed LikeStore. The (user_id, post_id) unique index is
// the final arbiter for concurrent likes of the same post.
type Likes struct {
	db *gorm.DB
}

// NewLikes creates a Likes store.
func NewLikes(db *gorm.DB) *Likes {
	return &Likes{db: db}
}

func (s *Likes) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert stores a new like. A second like of the same post by the same user
// fails with ErrDuplicateKey.
func (s *Likes) Insert(ctx context.Context, like *models.Like) error {
	return translate(s.db.WithContext(ctx).Omit("User").Create(like).Error)
}

func (s *Likes) Delete(ctx context.Context, userID, postID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindLikers returns the usernames that liked the post, oldest like first.
func (s *Likes) FindLikers(ctx context.Context, postID uint, page Page) ([]string, error) {
	names := make([]string, 0)
	q := s.db.WithContext(ctx).Model(&models.Like{}).
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.post_id = ?", postID).
		Order("likes.liked_at ASC").Order("likes.id ASC")
	err := page.apply(q).Pluck("users.username", &names).Error
	return names, translate(err)
}

var (
	_ UserStore    = (*Users)(nil)
	_ PostStore    = (*Posts)(nil)
	_ CommentStore = (*Comments)(nil)
	_ LikeStore    = (*Likes)(nil)
)
