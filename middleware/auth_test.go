package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGateRouter(t *testing.T) (*gin.Engine, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore(0)
	gate := NewGate(store, "")

	r := gin.New()
	r.GET("/me", gate.Required(), func(ctx *gin.Context) {
		id, ok := CurrentIdentity(ctx)
		require.True(t, ok)
		ctx.JSON(http.StatusOK, id)
	})
	return r, store
}

func TestGateRequired(t *testing.T) {
	r, store := newGateRouter(t)
	alice := session.Identity{UserID: 7, Username: "alice", Email: "alice@x.com"}
	token, err := store.Create(context.Background(), alice)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		status   int
		wantCode string
	}{
		{"missing header", "", http.StatusUnauthorized, "AUTH_001"},
		{"blank header", "   ", http.StatusUnauthorized, "AUTH_001"},
		{"unknown token", "not-a-session", http.StatusUnauthorized, "AUTH_002"},
		{"valid token", token, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(DefaultSessionHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.wantCode == "" {
				var got session.Identity
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, alice, got)
				return
			}
			var resp utils.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.ErrorCode)
			assert.Equal(t, "/me", resp.Endpoint)
		})
	}
}

func TestGateRejectsInvalidatedToken(t *testing.T) {
	store := session.NewMemoryStore(0)
	gate := NewGate(store, "X-Custom")
	ctx := context.Background()

	token, err := store.Create(ctx, session.Identity{UserID: 1, Username: "bob1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Custom", token)
	_, err = gate.Authenticate(req)
	require.NoError(t, err)

	require.NoError(t, store.Invalidate(ctx, token))
	_, err = gate.Authenticate(req)
	assert.ErrorIs(t, err, apperr.AuthInvalidToken)

	// the default header is not consulted when a custom one is configured
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DefaultSessionHeader, token)
	_, err = gate.Authenticate(req)
	assert.ErrorIs(t, err, apperr.AuthMissingToken)
}
