package middleware

import (
	"net/http"
	"strings"

	"github.com/Domi31tls/valentine/internal/auth"
	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey    = "currentUser"
	ctxSessionKey = "currentSession"

	// SessionCookie is the cookie the frontend stores the bearer token in.
	SessionCookie = "session_token"
)

// ExtractToken pulls the bearer token from the Authorization header, the
// session cookie, or the token query parameter (downloads cannot set
// headers).
func ExtractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("token")
}

// RequireAuth resolves the bearer token exactly once and stores user and
// session in the context. Missing, invalid and expired tokens all get the
// same 401, never hinting at which failed.
func RequireAuth(mgr *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, sess, err := mgr.Resolve(ExtractToken(c))
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeUnauthenticated, "authentication required")
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxSessionKey, sess)
		c.Next()
	}
}

// OptionalAuth stores the principal when a valid session is presented and
// passes through anonymously otherwise.
func OptionalAuth(mgr *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, sess, err := mgr.Resolve(ExtractToken(c)); err == nil {
			c.Set(ctxUserKey, user)
			c.Set(ctxSessionKey, sess)
		}
		c.Next()
	}
}

// RequireRole composes on RequireAuth: it reads the already-resolved
// principal and rejects with 403 when the role is not in the set. It never
// resolves the session a second time.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			util.Error(c, http.StatusUnauthorized, util.CodeUnauthenticated, "authentication required")
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "insufficient permissions")
		c.Abort()
	}
}

// RequireAdmin gates on the admin role.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// SessionSweep opportunistically purges expired sessions, throttled inside
// the manager to its sweep interval.
func SessionSweep(mgr *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		mgr.SweepIfDue()
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by the gate, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentSession returns the resolved session stored by the gate, or nil.
func CurrentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	sess, ok := v.(*models.Session)
	if !ok {
		return nil
	}
	return sess
}
