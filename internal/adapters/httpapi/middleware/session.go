package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/config"
	"yatube/internal/core/user"
)

const (
	// SessionCookie holds the signed session token.
	SessionCookie = "sessionid"
	viewerKey     = "viewer"
)

// Authenticator turns a session token into its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// Viewer loads the session user, if any, into the request context. A bad or
// expired token is dropped and the request continues anonymously.
func Viewer(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if errors.Is(err, http.ErrNoCookie) || token == "" {
			c.Next()
			return
		}
		u, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			config.Logger.Debug("dropping session", zap.Error(err))
			ClearSession(c)
			c.Next()
			return
		}
		c.Set(viewerKey, u)
		c.Next()
	}
}

// CurrentUser returns the session user or nil for anonymous requests.
func CurrentUser(c *gin.Context) *user.User {
	v, ok := c.Get(viewerKey)
	if !ok {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}

// SetSession stores token in the session cookie until expiresAt.
func SetSession(c *gin.Context, token string, expiresAt int64) {
	maxAge := int(time.Until(time.Unix(expiresAt, 0)).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", c.Request.TLS != nil, true)
}

func ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
}
