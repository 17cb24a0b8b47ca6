package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/session"
	"github.com/cppla/socialapi/utils"
)

const (
	// ContextIdentityKey is the key used to store the authenticated identity in Gin context.
	ContextIdentityKey = "identity"
	// DefaultSessionHeader carries the session token.
	DefaultSessionHeader = "X-Session-Token"
)

// Gate resolves the session token of an inbound request. It fails closed.
type Gate struct {
	sessions session.Store
	header   string
}

// NewGate creates a Gate reading the token from header.
func NewGate(sessions session.Store, header string) *Gate {
	if header == "" {
		header = DefaultSessionHeader
	}
	return &Gate{sessions: sessions, header: header}
}

// Header is the name of the request header carrying the token.
func (g *Gate) Header() string {
	return g.header
}

// Token returns the trimmed session token presented by r, if any.
func (g *Gate) Token(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(g.header))
}

// Authenticate returns the identity bound to the request's token.
func (g *Gate) Authenticate(r *http.Request) (session.Identity, error) {
	token := g.Token(r)
	if token == "" {
		return session.Identity{}, apperr.New(apperr.AuthMissingToken)
	}
	id, ok := g.sessions.Resolve(r.Context(), token)
	if !ok {
		return session.Identity{}, apperr.New(apperr.AuthInvalidToken)
	}
	return id, nil
}

// Required ensures the request carries a live session token.
func (g *Gate) Required() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := g.Authenticate(ctx.Request)
		if err != nil {
			utils.Fail(ctx, err)
			return
		}
		ctx.Set(ContextIdentityKey, id)
		ctx.Next()
	}
}

// CurrentIdentity returns the identity stored by Required.
func CurrentIdentity(ctx *gin.Context) (session.Identity, bool) {
	v, ok := ctx.Get(ContextIdentityKey)
	if !ok {
		return session.Identity{}, false
	}
	id, ok := v.(session.Identity)
	return id, ok
}
