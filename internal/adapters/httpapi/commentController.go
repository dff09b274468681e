package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/apperror"
)

type CommentController struct {
	cc     CommentUseCase
	render *Renderer
}

func NewCommentController(cc CommentUseCase, render *Renderer) *CommentController {
	return &CommentController{cc: cc, render: render}
}

// DeleteComment removes the viewer's comment and returns to the post. A
// foreign comment is left alone with the same redirect.
func (ctl *CommentController) DeleteComment(c *gin.Context) {
	cm, err := ctl.cc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil && !apperror.IsForbidden(err) {
		ctl.render.Fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(&cm.Post))
}
