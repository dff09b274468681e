package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// LoginURL is where anonymous visitors of protected pages are sent.
const LoginURL = "/auth/login/"

// LoginRequired redirects anonymous requests to the login page, keeping the
// requested path in ?next=.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Redirect(http.StatusFound, LoginURL+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}
