package utils

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return NewCache(rc, time.Minute), mr
}

func TestCacheRoundTripAndExpiry(t *testing.T) {
	c, mr := newTestCache(t)

	type item struct {
		Text string `json:"text"`
	}
	c.SetJSON("cache:post:detail:1:a", item{Text: "hello"})

	var got item
	require.True(t, c.GetJSON("cache:post:detail:1:a", &got))
	assert.Equal(t, "hello", got.Text)

	mr.FastForward(2 * time.Minute)
	assert.False(t, c.GetJSON("cache:post:detail:1:a", &got))
}

func TestCacheInvalidateByPrefix(t *testing.T) {
	c, mr := newTestCache(t)
	c.SetJSON("cache:post:detail:1:a", 1)
	c.SetJSON("cache:post:detail:1:b", 2)
	c.SetJSON("cache:post:detail:12:a", 3)

	c.InvalidateByPrefix("cache:post:detail:1:")

	assert.False(t, mr.Exists("cache:post:detail:1:a"))
	assert.False(t, mr.Exists("cache:post:detail:1:b"))
	assert.True(t, mr.Exists("cache:post:detail:12:a"))
}

func TestNilCacheIsAMiss(t *testing.T) {
	c := NewCache(nil, time.Minute)
	assert.Nil(t, c)

	var out int
	assert.False(t, c.GetJSON("k", &out))
	c.SetJSON("k", 1)
	c.InvalidateByPrefix("k")
}
