package httpapi

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	"yatube/internal/core/apperror"
	"yatube/internal/core/comment"
	"yatube/internal/core/feed"
	"yatube/internal/core/group"
	"yatube/internal/core/pagination"
	"yatube/internal/core/policy"
	"yatube/internal/core/post"
	"yatube/internal/core/sanitize"
	"yatube/internal/core/user"
)

//go:embed templates
var templateFS embed.FS

// PageData is handed to every template.
type PageData struct {
	Title    string
	Path     string
	Viewer   *user.User
	Year     int
	Feed     *feed.Feed
	Post     *post.Post
	Comments []*comment.Comment
	// CanEdit is set on the post page for the post's author.
	CanEdit bool
	// Neutral pages are shared by every viewer and get a nav without
	// account links.
	Neutral       bool
	Groups        []*group.Group
	GroupPage     pagination.Page[*group.Group]
	FollowerCount int
	Form          map[string]string
	Errors        map[string]string
	Next          string
}

// Renderer executes the base layout with one page template.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page under templates/ with the layout and
// partials. mediaURL maps stored image names to public URLs.
func NewRenderer(mediaURL func(string) string) (*Renderer, error) {
	if mediaURL == nil {
		mediaURL = func(name string) string { return "/media/" + name }
	}
	funcs := template.FuncMap{
		"rich":     sanitize.Rich,
		"mediaURL": mediaURL,
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006, 15:04")
		},
		"postURL": func(p *post.Post) string {
			return "/" + p.Author.Username + "/" + p.Slug + "/"
		},
		"pageURL": func(n int) string { return "?page=" + strconv.Itoa(n) },
		"isSelf": func(viewer, other *user.User) bool {
			return viewer != nil && other != nil && viewer.ID == other.ID
		},
		"canDeleteComment": policy.CanDeleteComment,
	}

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		name := page[len("templates/"):]
		if name == "base.html" {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/base.html", "templates/partials/*.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Bytes renders a page to memory.
func (r *Renderer) Bytes(name string, data *PageData) ([]byte, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	buf := new(bytes.Buffer)
	if err := t.ExecuteTemplate(buf, "base", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTML renders a page into the response. Rendering happens before anything
// is written, so a template error still produces a clean 500.
func (r *Renderer) HTML(c *gin.Context, status int, name string, data *PageData) {
	if data.Path == "" {
		data.Path = c.Request.URL.Path
	}
	body, err := r.Bytes(name, data)
	if err != nil {
		config.Logger.Error("template render failed", zap.String("template", name), zap.Error(err))
		_ = c.Error(err)
		c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("Internal Server Error"))
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}

func (r *Renderer) NotFound(c *gin.Context) {
	r.HTML(c, http.StatusNotFound, "404.html", &PageData{Title: "Page not found", Viewer: middleware.CurrentUser(c)})
}

func (r *Renderer) ServerError(c *gin.Context, err error) {
	config.Logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	_ = c.Error(err)
	r.HTML(c, http.StatusInternalServerError, "500.html", &PageData{Title: "Server error"})
}

// Fail maps an error from a use case onto a 404 or 500 page.
func (r *Renderer) Fail(c *gin.Context, err error) {
	if apperror.IsNotFound(err) {
		r.NotFound(c)
		return
	}
	r.ServerError(c, err)
}

// bindForm decodes the request form into dst. A body that cannot be decoded
// yields a form-level error for redisplay, otherwise nil.
func bindForm(c *gin.Context, dst any) map[string]string {
	if err := c.ShouldBind(dst); err != nil {
		config.Logger.Debug("form binding failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		return map[string]string{"__all__": "Invalid form submission."}
	}
	return nil
}

func viewerPage(c *gin.Context, title string) *PageData {
	return &PageData{Title: title, Viewer: middleware.CurrentUser(c)}
}
