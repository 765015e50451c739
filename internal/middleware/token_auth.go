package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenAuthMiddleware guards the API behind a single static bearer token.
// The tracker is single-user; when no token is configured the middleware is
// a pass-through for local use.
type TokenAuthMiddleware struct {
	token string
}

// NewTokenAuthMiddleware creates a new TokenAuthMiddleware
func NewTokenAuthMiddleware(token string) *TokenAuthMiddleware {
	return &TokenAuthMiddleware{token: token}
}

// Authenticate returns an Echo middleware that validates the bearer token
func (m *TokenAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.token == "" {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "Missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorizedError(c, "Invalid authorization header format")
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(m.token)) != 1 {
				return unauthorizedError(c, "Invalid token")
			}

			return next(c)
		}
	}
}
