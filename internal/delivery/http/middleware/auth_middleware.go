// Package middleware contains echo middleware for the HTTP API.
package middleware

import (
	"net/http"
	"strings"

	"geocue/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware validates bearer tokens on the API surface. When no secret
// is configured the API runs unauthenticated, which is only acceptable in
// development.
type AuthMiddleware struct {
	secret string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	secret := ""
	if cfg.Auth != nil {
		secret = cfg.Auth.Secret
	}

	return &AuthMiddleware{secret: secret}
}

// Enabled reports whether authentication is configured.
func (m *AuthMiddleware) Enabled() bool {
	return m.secret != ""
}

// Authenticate validates the JWT access token from the Authorization header.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.Enabled() {
			return next(c)
		}

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return []byte(m.secret), nil
		})
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if subject, ok := claims["sub"].(string); ok {
				c.Set("subject", subject)
			}
		}

		return next(c)
	}
}
