package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/store"
	"github.com/cppla/socialapi/store/storetest"
	"github.com/cppla/socialapi/utils"
)

type fixture struct {
	db       *gorm.DB
	sessions *session.MemoryStore
	auth     *AuthService
	guard    *Guard
	ledger   *LikeLedger
	posts    *PostService
	comments *CommentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := storetest.OpenDB(t)

	users := store.NewUsers(db)
	posts := store.NewPosts(db)
	comments := store.NewComments(db)
	likes := store.NewLikes(db)
	sessions := session.NewMemoryStore(0)
	guard := NewGuard(posts, comments)

	return &fixture{
		db:       db,
		sessions: sessions,
		auth:     NewAuthService(users, sessions, utils.NewBcryptHasher(bcrypt.MinCost)),
		guard:    guard,
		ledger:   NewLikeLedger(posts, likes),
		posts:    NewPostService(posts, comments, likes, guard),
		comments: NewCommentService(posts, comments, guard),
	}
}

// signUp registers and logs in a user, returning the resolved identity.
func (f *fixture) signUp(t *testing.T, username string) session.Identity {
	t.Helper()
	ctx := context.Background()
	_, err := f.auth.Register(ctx, RegisterInput{
		FirstName: "First",
		LastName:  "Last",
		Username:  username,
		Email:     username + "@x.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	token, err := f.auth.Login(ctx, username+"@x.com", "secret123")
	require.NoError(t, err)
	id, ok := f.sessions.Resolve(ctx, token)
	require.True(t, ok)
	return id
}
