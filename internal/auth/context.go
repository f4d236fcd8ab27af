package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxEmail = "email"
)

// Identity is the authenticated caller as seen by the project service.
// Only the email claim is consumed.
type Identity struct {
	Email string `json:"email"`
}

// SessionOracle resolves the caller of the current request, if any.
type SessionOracle interface {
	Identity(ctx context.Context) (*Identity, bool)
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || strings.TrimSpace(id.Email) == "" {
		return nil, false
	}
	return &id, true
}

// ContextOracle reads the identity the HTTP middlewares placed on the
// request context.
type ContextOracle struct{}

func (ContextOracle) Identity(ctx context.Context) (*Identity, bool) {
	return IdentityFromContext(ctx)
}

// SetIdentity records id on both the gin context and the request context,
// so handlers and services see the same caller.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(CtxEmail, id.Email)
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
}

// UserEmail extracts the caller's email from the Gin context
// This is set by the identity middlewares
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}
