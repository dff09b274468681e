package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/feed"
	"yatube/internal/core/follower"
	"yatube/internal/core/policy"
)

type FeedController struct {
	fc     FeedUseCase
	follow FollowerUseCase
	render *Renderer
}

func NewFeedController(fc FeedUseCase, follow FollowerUseCase, render *Renderer) *FeedController {
	return &FeedController{fc: fc, follow: follow, render: render}
}

// Index renders the global feed. The body is cached for every viewer, so
// it is rendered without the session user.
func (ctl *FeedController) Index(c *gin.Context) {
	f, err := ctl.fc.Compose(c.Request.Context(), feed.GlobalScope(), nil, c.Query("page"))
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	ctl.render.HTML(c, http.StatusOK, "index.html", &PageData{Title: "Latest posts", Feed: f, Neutral: true})
}

func (ctl *FeedController) Group(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	f, err := ctl.fc.Compose(c.Request.Context(), feed.GroupScope(c.Param("slug")), viewer, c.Query("page"))
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	if !policy.CanViewGroup(f.Group) {
		ctl.render.NotFound(c)
		return
	}
	count, err := ctl.follow.CountFollowers(c.Request.Context(), follower.GroupTarget(f.Group.ID))
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	data := viewerPage(c, f.Group.Title)
	data.Feed = f
	data.FollowerCount = count
	ctl.render.HTML(c, http.StatusOK, "group.html", data)
}

// Profile renders an author's posts. An author without posts still gets a
// page.
func (ctl *FeedController) Profile(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	f, err := ctl.fc.Compose(c.Request.Context(), feed.AuthorScope(c.Param("username")), viewer, c.Query("page"))
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	count, err := ctl.follow.CountFollowers(c.Request.Context(), follower.AuthorTarget(f.Author.ID))
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	data := viewerPage(c, f.Author.DisplayName())
	data.Feed = f
	data.FollowerCount = count
	ctl.render.HTML(c, http.StatusOK, "profile.html", data)
}

// Followed renders the session user's followed feed. The username in the
// path is not consulted. Anonymous visitors get an empty feed.
func (ctl *FeedController) Followed(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	f, err := ctl.fc.Compose(c.Request.Context(), feed.FollowedScope(), viewer, c.Query("page"))
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	data := viewerPage(c, "Following")
	data.Feed = f
	ctl.render.HTML(c, http.StatusOK, "follows.html", data)
}
