// Package services holds the domain rules: credential checks, ownership,
// like uniqueness and the post/comment workflows. Every expected failure is
// returned as an *apperr.Error; nothing here logs or writes responses.
package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/store"
	"github.com/cppla/socialapi/utils"
)

// PasswordHasher is a one-way salted password hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(hash, plain string) bool
}

const (
	MinPostText    = 2
	MaxPostText    = 512
	MinCommentText = 2
	MaxCommentText = 128

	// Listings embed this many comments and likers per post.
	embeddedPageSize = 5
)

// lookupErr converts a store lookup failure into notFound or SYSTEM_003.
func lookupErr(err error, notFound apperr.Kind) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.New(notFound)
	}
	return apperr.Wrap(apperr.SystemDatabase, err)
}

func dbErr(err error) error {
	if err == nil {
		return nil
	}
	return apperr.Wrap(apperr.SystemDatabase, err)
}

// cleanText sanitizes user supplied text and checks its length afterwards.
func cleanText(raw string, min, max int, invalid apperr.Kind) (string, error) {
	text := strings.TrimSpace(utils.Sanitize(raw))
	n := utf8.RuneCountInString(text)
	if n < min || n > max {
		return "", apperr.Newf(invalid, "Text must be between %d and %d characters", min, max)
	}
	return text, nil
}
