package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/entities"
)

// Context keys for the resolved identity
const (
	ContextKeyUser     = "auth_user"
	ContextKeyUsername = "auth_username"
)

// Middleware resolves the request's identity and guards protected routes.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
	}
}

// ResolveIdentity returns a middleware that resolves the session's user once
// per request and stores it in the Gin context. The request stays anonymous
// when there is no session or when the stored user ID no longer resolves
// (e.g. the account was removed after login).
func (m *Middleware) ResolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := m.sessionManager.GetUserID(c.Request)
		if userID == 0 {
			c.Next()
			return
		}

		user, err := m.service.GetUserByID(userID)
		if err != nil {
			// Stale session: fall back to anonymous
			c.Next()
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyUsername, user.Username)
		c.Next()
	}
}

// RequireAuth returns a middleware that refuses anonymous requests with a
// redirect to the login page, encoding the originally requested path so the
// user returns to it after logging in.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			next := c.Request.URL.Path
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(next))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the context.
// Returns nil for anonymous requests.
func CurrentUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}

// CurrentUsername retrieves the authenticated user's username, or "" when
// anonymous.
func CurrentUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		if username, ok := name.(string); ok {
			return username
		}
	}
	return ""
}

// IsAuthenticated returns true if the request carries a resolved identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUser(c) != nil
}
