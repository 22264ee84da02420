package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"

	"github.com/fisiotrack/ward-api/internal/handler"
	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/repository"
	"github.com/fisiotrack/ward-api/pkg/auth"
	apperrors "github.com/fisiotrack/ward-api/pkg/errors"
)

const currentUserKey = "currentUser"

// userCacheTTL bounds how stale the must-change/active flags seen by the
// gates below can get.
const userCacheTTL = 30 * time.Second

type AuthMiddleware struct {
	tokens     auth.TokenService
	users      repository.UserRepository
	cookieName string
	cache      *cache.Cache
}

func NewAuthMiddleware(tokens auth.TokenService, users repository.UserRepository, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		users:      users,
		cookieName: cookieName,
		cache:      cache.New(userCacheTTL, time.Minute),
	}
}

// Authenticate verifies the session token (cookie or bearer header), loads the
// account and rejects tokens of since-deactivated users.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			handler.Error(c, apperrors.Unauthenticated("missing session token"))
			c.Abort()
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			handler.Error(c, apperrors.Unauthenticated("invalid session token"))
			c.Abort()
			return
		}

		user, err := m.currentUser(c, claims)
		if err != nil {
			handler.Error(c, apperrors.Internal(err))
			c.Abort()
			return
		}
		if user == nil || user.Status != model.UserStatusActive {
			handler.Error(c, apperrors.Unauthenticated("account is not active"))
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin gates admin-only operations.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			handler.Error(c, apperrors.Forbidden("administrator role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ForcePasswordChange blocks every guarded operation while the must-change
// flag is set. Change-password and logout are registered outside this gate.
func (m *AuthMiddleware) ForcePasswordChange() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if ok && user.MustChangePassword {
			c.JSON(http.StatusConflict, gin.H{
				"status":   "error",
				"message":  "password change required before continuing",
				"redirect": "/change-password",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Invalidate drops a user from the lookup cache after password or status changes.
func (m *AuthMiddleware) Invalidate(userID string) {
	m.cache.Delete(userID)
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if parts := strings.Split(header, " "); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func (m *AuthMiddleware) currentUser(c *gin.Context, claims *auth.Claims) (*model.User, error) {
	key := claims.UserID.String()
	if cached, ok := m.cache.Get(key); ok {
		return cached.(*model.User), nil
	}

	user, err := m.users.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		m.cache.Set(key, user, cache.DefaultExpiration)
	}
	return user, nil
}

// CurrentUser returns the authenticated account set by Authenticate.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
