package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/models"
	"github.com/cppla/socialapi/store"
)

func TestLikeTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")
	post, err := f.posts.Create(ctx, "hello world", alice)
	require.NoError(t, err)

	require.NoError(t, f.ledger.Like(ctx, post.PostID, alice))
	assert.ErrorIs(t, f.ledger.Like(ctx, post.PostID, alice), apperr.LikeAlreadyExists)
}

func TestUnlikeSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")
	post, err := f.posts.Create(ctx, "hello world", alice)
	require.NoError(t, err)

	assert.ErrorIs(t, f.ledger.Unlike(ctx, post.PostID, alice), apperr.LikeNotFound)

	require.NoError(t, f.ledger.Like(ctx, post.PostID, alice))
	require.NoError(t, f.ledger.Unlike(ctx, post.PostID, alice))
	assert.ErrorIs(t, f.ledger.Unlike(ctx, post.PostID, alice), apperr.LikeNotFound)

	// liking again after unliking is a fresh fact
	assert.NoError(t, f.ledger.Like(ctx, post.PostID, alice))
}

func TestLikeMissingPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")

	assert.ErrorIs(t, f.ledger.Like(ctx, 99, alice), apperr.PostNotFound)
	assert.ErrorIs(t, f.ledger.Unlike(ctx, 99, alice), apperr.PostNotFound)
	_, err := f.ledger.LikersOf(ctx, 99, store.FirstPage(10))
	assert.ErrorIs(t, err, apperr.PostNotFound)
}

func TestLikersScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")
	bob := f.signUp(t, "bob1")

	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	f.ledger.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	post, err := f.posts.Create(ctx, "post P", alice)
	require.NoError(t, err)

	require.NoError(t, f.ledger.Like(ctx, post.PostID, alice))
	require.NoError(t, f.ledger.Like(ctx, post.PostID, bob))
	assert.ErrorIs(t, f.ledger.Like(ctx, post.PostID, alice), apperr.LikeAlreadyExists)

	first, err := f.ledger.LikersOf(ctx, post.PostID, store.FirstPage(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob1"}, first)

	second, err := f.ledger.LikersOf(ctx, post.PostID, store.FirstPage(10))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConcurrentLikesKeepOneFact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signUp(t, "alice")
	post, err := f.posts.Create(ctx, "popular", alice)
	require.NoError(t, err)

	const workers = 10
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.ledger.Like(ctx, post.PostID, alice)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, apperr.LikeAlreadyExists)
	}
	assert.Equal(t, 1, ok)

	var count int64
	require.NoError(t, f.db.Model(&models.Like{}).Where("post_id = ?", post.PostID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
