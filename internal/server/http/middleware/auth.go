package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "storefront_token"
)

// TokenParser resolves a bearer token into a user identifier.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// RoleChecker reports whether a user holds the admin role.
type RoleChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "login required")
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, "internal server error")
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// AdminRequired lets only admins through. It must run after AuthRequired.
func AdminRequired(checker RoleChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(UserIDContextKey)
		if userID == 0 {
			abort(c, http.StatusUnauthorized, "login required")
			return
		}

		ok, err := checker.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				abort(c, http.StatusUnauthorized, "unknown user")
				return
			}
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, "internal server error")
			return
		}
		if !ok {
			abort(c, http.StatusForbidden, "admin role required")
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
