package models

import "time"

// Like records that a user liked a post. The (UserID, PostID) pair is unique.
type Like struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID  uint      `gorm:"not null;uniqueIndex:idx_like_user_post;index" json:"post_id"`
	LikedAt time.Time `gorm:"not null" json:"liked_at"`
	User    User      `json:"-"`
}
