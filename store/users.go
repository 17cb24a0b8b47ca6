package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/socialapi/models"
)

// Users is the gorm-backed UserStore.
type Users struct {
	db *gorm.DB
}

// NewUsers creates a Users store.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (s *Users) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "username = ?", username)
}

func (s *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email = ?", email)
}

func (s *Users) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Users) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Users) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Save inserts a new user or updates an existing one.
func (s *Users) Save(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Save(user).Error)
}

// FindAll lists users ordered by first name, then id.
func (s *Users) FindAll(ctx context.Context, page Page) ([]models.User, error) {
	var users []models.User
	err := page.apply(s.db.WithContext(ctx).Order("first_name ASC").Order("id ASC")).Find(&users).Error
	return users, translate(err)
}
