package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	userPort "inkwell/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// UserIDKey is the gin context key holding the authenticated user id.
	UserIDKey = "userID"
	// TokenCookie is the cookie the login endpoint sets.
	TokenCookie = "token"
	LoginURL    = "/auth/login/"
)

var errInvalidToken = errors.New("invalid token")

// Accounts resolves the subject of a token to a live account.
type Accounts interface {
	GetByID(ctx context.Context, id string) (*userPort.UserDTO, error)
}

// OptionalAuth stores the caller's user id in the context when the request
// carries a valid token for an account that still exists. Anything else is
// treated as anonymous.
func OptionalAuth(secret []byte, accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			c.Next()
			return
		}
		userID, err := ParseToken(secret, raw)
		if err != nil {
			c.Next()
			return
		}
		if _, err := accounts.GetByID(c.Request.Context(), userID); err != nil {
			if !apperror.IsNotFound(err) {
				config.Logger.Warn("Account lookup failed", zap.String("userID", userID), zap.Error(err))
			}
			c.Next()
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// LoginRequired sends anonymous callers to the login page and drops the request.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			target := LoginURL + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id or "".
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// ParseToken verifies an HS256 token and returns its subject.
func ParseToken(secret []byte, raw string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}
