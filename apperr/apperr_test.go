package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsHaveUniqueCodes(t *testing.T) {
	seenCodes := map[string]Kind{}
	seenNames := map[string]Kind{}
	for _, k := range Kinds() {
		require.NotEmpty(t, k.Code(), "kind %d has no code", k)
		require.NotEmpty(t, k.Message(), "kind %s has no message", k)

		prev, dup := seenCodes[k.Code()]
		assert.False(t, dup, "code %s used by %s and %s", k.Code(), prev, k)
		seenCodes[k.Code()] = k

		prev, dup = seenNames[k.Name()]
		assert.False(t, dup, "name %s used twice (%d, %d)", k.Name(), prev, k)
		seenNames[k.Name()] = k
	}
	assert.Len(t, seenCodes, len(kinds))
}

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind   Kind
		code   string
		status int
	}{
		{AuthMissingToken, "AUTH_001", http.StatusUnauthorized},
		{AuthInvalidToken, "AUTH_002", http.StatusUnauthorized},
		{AuthInvalidCredentials, "AUTH_003", http.StatusUnauthorized},
		{UserUsernameExists, "USER_001", http.StatusConflict},
		{UserEmailExists, "USER_002", http.StatusConflict},
		{PostNotFound, "POST_001", http.StatusNotFound},
		{PostAccessDenied, "POST_002", http.StatusForbidden},
		{CommentNotFound, "COMMENT_001", http.StatusNotFound},
		{CommentAccessDenied, "COMMENT_002", http.StatusForbidden},
		{LikeAlreadyExists, "LIKE_001", http.StatusConflict},
		{LikeNotFound, "LIKE_002", http.StatusNotFound},
		{ValidationFailed, "VALIDATION_001", http.StatusBadRequest},
		{SystemInternal, "SYSTEM_001", http.StatusInternalServerError},
		{SystemServiceUnavailable, "SYSTEM_002", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.kind.Name(), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.kind.Code())
			assert.Equal(t, tt.status, tt.kind.HTTPStatus())
		})
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("liking post 7: %w", New(LikeAlreadyExists))

	assert.True(t, errors.Is(err, LikeAlreadyExists))
	assert.False(t, errors.Is(err, LikeNotFound))

	k, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, LikeAlreadyExists, k)
}

func TestKindOfUntyped(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	assert.False(t, ok)

	k, ok := KindOf(fmt.Errorf("wrapped: %w", PostNotFound))
	require.True(t, ok)
	assert.Equal(t, PostNotFound, k)
}

func TestWrapKeepsCauseOutOfPublicMessage(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.3:3306: connection refused")
	err := Wrap(SystemDatabase, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, SystemDatabase.Message(), err.PublicMessage())
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewfOverridesMessage(t *testing.T) {
	err := Newf(UserUsernameExists, "Username '%s' is already in use", "alice")
	assert.Equal(t, "Username 'alice' is already in use", err.PublicMessage())
	assert.Equal(t, "USER_001: Username 'alice' is already in use", err.Error())
}

func TestValidationCarriesFields(t *testing.T) {
	err := Validation(map[string]string{"email": "must be a valid email"})
	assert.Equal(t, ValidationFailed, err.Kind)
	assert.Equal(t, "must be a valid email", err.Fields["email"])
}
