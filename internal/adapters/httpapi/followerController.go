package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	"yatube/internal/core/apperror"
	followerapp "yatube/internal/core/follower/service"
)

type FollowerController struct {
	fc     FollowerUseCase
	render *Renderer
}

func NewFollowerController(fc FollowerUseCase, render *Renderer) *FollowerController {
	return &FollowerController{fc: fc, render: render}
}

func (ctl *FollowerController) FollowAuthor(c *gin.Context) {
	username := c.Param("username")
	err := ctl.fc.FollowAuthor(c.Request.Context(), middleware.CurrentUser(c), username)
	ctl.finish(c, err, "/"+username+"/")
}

func (ctl *FollowerController) UnfollowAuthor(c *gin.Context) {
	username := c.Param("username")
	err := ctl.fc.UnfollowAuthor(c.Request.Context(), middleware.CurrentUser(c), username)
	ctl.finish(c, err, "/"+username+"/")
}

func (ctl *FollowerController) FollowGroup(c *gin.Context) {
	slug := c.Param("username")
	err := ctl.fc.FollowGroup(c.Request.Context(), middleware.CurrentUser(c), slug)
	ctl.finish(c, err, "/group/"+slug+"/")
}

func (ctl *FollowerController) UnfollowGroup(c *gin.Context) {
	slug := c.Param("username")
	err := ctl.fc.UnfollowGroup(c.Request.Context(), middleware.CurrentUser(c), slug)
	ctl.finish(c, err, "/group/"+slug+"/")
}

// finish redirects back to the target's page. Following yourself and
// unfollowing something you never followed change nothing and redirect too.
// An unknown target is a 404.
func (ctl *FollowerController) finish(c *gin.Context, err error, target string) {
	switch {
	case err == nil:
	case errors.Is(err, followerapp.ErrNotFollowing):
		config.Logger.Debug("unfollow without edge", zap.String("target", target))
	case apperror.IsNotFound(err):
		ctl.render.NotFound(c)
		return
	case apperror.IsForbidden(err):
	default:
		if _, ok := apperror.AsValidation(err); !ok {
			ctl.render.ServerError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, target)
}
