// Package store implements the persistence collaborators on top of gorm.
//
// Lookups return ErrNotFound on a miss and writes return ErrDuplicateKey when
// a unique index rejects the row, so callers never inspect driver errors.
package store

import (
	"context"
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/socialapi/models"
)

var (
	// ErrNotFound is returned when a keyed lookup matches no row.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicateKey is returned when a unique index rejects a write.
	ErrDuplicateKey = errors.New("store: duplicate key")
)

// Page selects a window of an ordered listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxOffset bounds Offset so page numbers past any real table yield an
	// empty page instead of overflowing.
	MaxOffset = math.MaxInt32
)

// FirstPage returns page 1 with the given size.
func FirstPage(size int) Page {
	return Page{Number: 1, Size: size}
}

// Limit is the normalized page size.
func (p Page) Limit() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	if p.Size > MaxPageSize {
		return MaxPageSize
	}
	return p.Size
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	if p.Number-1 > MaxOffset/p.Limit() {
		return MaxOffset
	}
	return (p.Number - 1) * p.Limit()
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Limit())
}

// UserStore persists identities.
type UserStore interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	FindAll(ctx context.Context, page Page) ([]models.User, error)
}

// PostStore persists posts. Delete removes the post's comments and likes in
// the same transaction.
type PostStore interface {
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context, page Page) ([]models.Post, error)
	FindAllByUsername(ctx context.Context, username string, page Page) ([]models.Post, error)
}

// CommentStore persists comments. FindByID preloads the author and parent post.
type CommentStore interface {
	FindByID(ctx context.Context, id uint) (*models.Comment, error)
	Save(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	FindAllByPostID(ctx context.Context, postID uint, page Page) ([]models.Comment, error)
	FindAllByUsername(ctx context.Context, username string, page Page) ([]models.Comment, error)
}

// LikeStore persists like facts.
type LikeStore interface {
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	Insert(ctx context.Context, like *models.Like) error
	// Delete reports whether a like was removed.
	Delete(ctx context.Context, userID, postID uint) (bool, error)
	// FindLikers returns usernames in like order (oldest first).
	FindLikers(ctx context.Context, postID uint, page Page) ([]string, error)
}

// translate maps gorm/driver errors to the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateKey(err):
		return ErrDuplicateKey
	default:
		return err
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for drivers without an error translator.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
