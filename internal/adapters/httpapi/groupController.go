package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/apperror"
	"yatube/internal/core/group"
	groupPort "yatube/internal/ports/group"
)

type GroupController struct {
	gc     GroupUseCase
	render *Renderer
}

func NewGroupController(gc GroupUseCase, render *Renderer) *GroupController {
	return &GroupController{gc: gc, render: render}
}

func (ctl *GroupController) List(c *gin.Context) {
	page, err := ctl.gc.ListModerated(c.Request.Context(), c.Query("page"))
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	data := viewerPage(c, "Groups")
	data.GroupPage = page
	ctl.render.HTML(c, http.StatusOK, "group_list.html", data)
}

func (ctl *GroupController) NewGroup(c *gin.Context) {
	data := viewerPage(c, "New group")
	data.Form = map[string]string{}
	ctl.render.HTML(c, http.StatusOK, "group_form.html", data)
}

func (ctl *GroupController) CreateGroup(c *gin.Context) {
	var in groupPort.GroupInput
	errs := bindForm(c, &in)

	var g *group.Group
	var err error
	if errs == nil {
		g, err = ctl.gc.Create(c.Request.Context(), middleware.CurrentUser(c), in)
		if v, ok := apperror.AsValidation(err); ok {
			errs = v.Fields
		}
	}
	if errs != nil {
		data := viewerPage(c, "New group")
		data.Form = map[string]string{"title": in.Title, "slug": in.Slug, "description": in.Description}
		data.Errors = errs
		ctl.render.HTML(c, http.StatusOK, "group_form.html", data)
		return
	}
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/group/"+g.Slug+"/")
}
