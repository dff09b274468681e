package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"yatube/internal/core/user"
)

type tokenTable map[string]*user.User

func (t tokenTable) Authenticate(ctx context.Context, token string) (*user.User, error) {
	if u, ok := t[token]; ok {
		return u, nil
	}
	return nil, errors.New("unknown token")
}

func authEngine() *gin.Engine {
	r := gin.New()
	r.Use(Viewer(tokenTable{"good": {Username: "alice"}}))
	r.GET("/whoami/", func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/private/", LoginRequired(), func(c *gin.Context) { c.String(http.StatusOK, "secret") })
	return r
}

func withSession(target, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	return req
}

func TestViewerLoadsSessionUser(t *testing.T) {
	r := authEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession("/whoami/", "good"))
	assert.Equal(t, "alice", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami/", nil))
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestViewerDropsBadSession(t *testing.T) {
	r := authEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession("/whoami/", "forged"))

	assert.Equal(t, "anonymous", w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"=;")
}

func TestLoginRequired(t *testing.T) {
	r := authEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private/?x=1", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fprivate%2F%3Fx%3D1", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, withSession("/private/", "good"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())
}
