package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/achadosdoados/backend/internal/token"
)

// ContextKeyUserID is where RequireToken stores the authenticated user's
// ID in the gin context.
const ContextKeyUserID = "userID"

const bearerPrefix = "Bearer "

// Authenticator resolves bearer tokens against the injected token store.
type Authenticator struct {
	tokens *token.Store
}

func NewAuthenticator(tokens *token.Store) *Authenticator {
	return &Authenticator{
		tokens: tokens,
	}
}

// RequireToken aborts with 401 when the Authorization header is missing,
// malformed, or carries a token the store does not recognize. Role and
// ownership checks are the handlers' business; this tier only answers
// "who is calling".
func (a *Authenticator) RequireToken() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token ausente"})
			return
		}

		userID, ok := a.tokens.Resolve(strings.TrimPrefix(header, bearerPrefix))
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token inválido"})
			return
		}

		ctx.Set(ContextKeyUserID, userID)
		ctx.Next()
	}
}

// BearerToken extracts the raw token from the Authorization header, if
// present. Used by routes that accept but do not require a token.
func BearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	return strings.TrimPrefix(header, bearerPrefix), true
}
