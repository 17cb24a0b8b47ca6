package services

import (
	"context"
	"errors"
	"time"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/models"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/store"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	BirthDate time.Time
}

// AuthService registers users, checks credentials and manages sessions.
type AuthService struct {
	users    store.UserStore
	sessions session.Store
	hasher   PasswordHasher
}

// NewAuthService creates an AuthService.
func NewAuthService(users store.UserStore, sessions session.Store, hasher PasswordHasher) *AuthService {
	return &AuthService{users: users, sessions: sessions, hasher: hasher}
}

// Register creates a new identity. Username conflicts are reported before
// email conflicts.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.checkAvailable(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.SystemInternal, err)
	}
	user := &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		BirthDate:    in.BirthDate,
		PasswordHash: hash,
	}
	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			// Lost a race with a concurrent registration; find out which key.
			if cerr := s.checkAvailable(ctx, in.Username, in.Email); cerr != nil {
				return nil, cerr
			}
			return nil, apperr.New(apperr.UserUsernameExists)
		}
		return nil, dbErr(err)
	}
	return user, nil
}

func (s *AuthService) checkAvailable(ctx context.Context, username, email string) error {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return dbErr(err)
	}
	if taken {
		return apperr.Newf(apperr.UserUsernameExists, "Username '%s' is already in use", username)
	}
	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return dbErr(err)
	}
	if taken {
		return apperr.Newf(apperr.UserEmailExists, "Email '%s' is already in use", email)
	}
	return nil
}

// Login verifies credentials and opens a session. An unknown email and a
// wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperr.New(apperr.AuthInvalidCredentials)
		}
		return "", dbErr(err)
	}
	if !s.hasher.Matches(user.PasswordHash, password) {
		return "", apperr.New(apperr.AuthInvalidCredentials)
	}

	token, err := s.sessions.Create(ctx, session.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return "", apperr.Wrap(apperr.SystemServiceUnavailable, err)
	}
	return token, nil
}

// Logout revokes the session token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Invalidate(ctx, token); err != nil {
		return apperr.Wrap(apperr.SystemServiceUnavailable, err)
	}
	return nil
}

// Profile loads the account behind a session. A session that outlived its
// user reports USER_NOT_FOUND.
func (s *AuthService) Profile(ctx context.Context, userID uint) (Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return Profile{}, lookupErr(err, apperr.UserNotFound)
	}
	return toProfile(*user), nil
}

// ListUsers returns public user summaries ordered by first name.
func (s *AuthService) ListUsers(ctx context.Context, page store.Page) ([]UserSummary, error) {
	users, err := s.users.FindAll(ctx, page)
	if err != nil {
		return nil, dbErr(err)
	}
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, toUserSummary(u))
	}
	return out, nil
}
