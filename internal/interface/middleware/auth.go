package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/oksasatya/go-talent-marketplace/pkg/helpers"
	"github.com/oksasatya/go-talent-marketplace/pkg/response"
)

// CtxUserIDKey is the gin context key holding the authenticated user id.
const CtxUserIDKey = "userID"

// TokenVerifier is satisfied by helpers.JWTManager.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth reads the raw token from the Authorization header and injects the user id.
// A missing token answers 401; a token that fails verification answers 400.
func Auth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization"))
		if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
			token = strings.TrimSpace(token[7:])
		}
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Access Denied", nil)
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid Token", tokenFailure(err))
			return
		}

		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

// UserIDFrom returns the id set by Auth, or "" on public routes.
func UserIDFrom(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}

func tokenFailure(err error) string {
	switch {
	case errors.Is(err, helpers.ErrTokenExpired):
		return "expired"
	case errors.Is(err, helpers.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
