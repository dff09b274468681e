package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/apperror"
	"yatube/internal/core/policy"
	"yatube/internal/core/post"
	postapp "yatube/internal/core/post/service"
	commentPort "yatube/internal/ports/comment"
	mediaPort "yatube/internal/ports/media"
	postPort "yatube/internal/ports/post"
)

type PostController struct {
	pc     PostUseCase
	cc     CommentUseCase
	gc     GroupUseCase
	render *Renderer
}

func NewPostController(pc PostUseCase, cc CommentUseCase, gc GroupUseCase, render *Renderer) *PostController {
	return &PostController{pc: pc, cc: cc, gc: gc, render: render}
}

func postPath(p *post.Post) string {
	return "/" + p.Author.Username + "/" + p.Slug + "/"
}

func (ctl *PostController) Detail(c *gin.Context) {
	p, err := ctl.pc.Get(c.Request.Context(), c.Param("username"), c.Param("post_slug"))
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	ctl.renderDetail(c, p, nil, nil)
}

func (ctl *PostController) renderDetail(c *gin.Context, p *post.Post, form, errs map[string]string) {
	comments, err := ctl.cc.ListForPost(c.Request.Context(), p.ID)
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	data := viewerPage(c, p.Title)
	if !policy.CanView(data.Viewer, p) {
		ctl.render.NotFound(c)
		return
	}
	data.Post = p
	data.Comments = comments
	data.CanEdit = policy.CanEdit(data.Viewer, p)
	data.Form = form
	data.Errors = errs
	ctl.render.HTML(c, http.StatusOK, "post.html", data)
}

// AddComment posts a comment. Anonymous submissions are dropped with a
// redirect back to the post.
func (ctl *PostController) AddComment(c *gin.Context) {
	username, slug := c.Param("username"), c.Param("post_slug")
	var in commentPort.CommentInput
	errs := bindForm(c, &in)

	var err error
	if errs == nil {
		_, err = ctl.cc.Add(c.Request.Context(), middleware.CurrentUser(c), username, slug, in)
		if v, ok := apperror.AsValidation(err); ok {
			errs = v.Fields
		}
	}
	if errs != nil {
		p, err := ctl.pc.Get(c.Request.Context(), username, slug)
		if err != nil {
			ctl.render.Fail(c, err)
			return
		}
		ctl.renderDetail(c, p, map[string]string{"text": in.Text}, errs)
		return
	}
	if err != nil && !apperror.IsForbidden(err) {
		ctl.render.Fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+username+"/"+slug+"/")
}

func (ctl *PostController) NewPost(c *gin.Context) {
	ctl.renderForm(c, "New post", nil, map[string]string{}, nil)
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	var in postPort.PostInput
	if errs := bindForm(c, &in); errs != nil {
		ctl.renderForm(c, "New post", nil, map[string]string{}, errs)
		return
	}
	image, err := readImage(c)
	if err != nil {
		ctl.render.ServerError(c, err)
		return
	}
	in.Image = image

	_, err = ctl.pc.Create(c.Request.Context(), viewer, in)
	if v, ok := apperror.AsValidation(err); ok {
		form := map[string]string{"group": in.Group, "title": in.Title, "text": in.Text, "slug": in.Slug}
		ctl.renderForm(c, "New post", nil, form, v.Fields)
		return
	}
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+viewer.Username+"/")
}

// EditForm shows the edit form to the author. Everyone else is sent to the
// post.
func (ctl *PostController) EditForm(c *gin.Context) {
	p, err := ctl.pc.Get(c.Request.Context(), c.Param("username"), c.Param("post_slug"))
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	if !policy.CanEdit(middleware.CurrentUser(c), p) {
		c.Redirect(http.StatusFound, postPath(p))
		return
	}
	form := map[string]string{"title": p.Title, "text": p.Text}
	if p.Group != nil {
		form["group"] = p.Group.Slug
	}
	ctl.renderForm(c, "Edit post", p, form, nil)
}

func (ctl *PostController) EditPost(c *gin.Context) {
	var in postPort.PostEditInput
	if errs := bindForm(c, &in); errs != nil {
		p, err := ctl.pc.Get(c.Request.Context(), c.Param("username"), c.Param("post_slug"))
		if err != nil {
			ctl.render.Fail(c, err)
			return
		}
		if !policy.CanEdit(middleware.CurrentUser(c), p) {
			c.Redirect(http.StatusFound, postPath(p))
			return
		}
		ctl.renderForm(c, "Edit post", p, map[string]string{"title": p.Title, "text": p.Text}, errs)
		return
	}
	image, err := readImage(c)
	if err != nil {
		ctl.render.ServerError(c, err)
		return
	}
	in.Image = image

	p, err := ctl.pc.Edit(c.Request.Context(), middleware.CurrentUser(c),
		c.Param("username"), c.Param("post_slug"), in)
	if v, ok := apperror.AsValidation(err); ok {
		form := map[string]string{"group": in.Group, "title": in.Title, "text": in.Text}
		ctl.renderForm(c, "Edit post", p, form, v.Fields)
		return
	}
	if err != nil && !apperror.IsForbidden(err) {
		ctl.render.Fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(p))
}

// DeletePost deletes one of the viewer's posts. The optional "author" field
// addresses another user's post, which is left alone. Either way the
// response is a redirect to the viewer's profile.
func (ctl *PostController) DeletePost(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	author := c.PostForm("author")
	if author == "" {
		author = viewer.Username
	}
	err := ctl.pc.Delete(c.Request.Context(), viewer, author, c.Param("slug"))
	if err != nil && !apperror.IsForbidden(err) && !apperror.IsNotFound(err) {
		ctl.render.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+viewer.Username+"/")
}

func (ctl *PostController) renderForm(c *gin.Context, title string, p *post.Post, form, errs map[string]string) {
	groups, err := ctl.gc.All(c.Request.Context())
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	data := viewerPage(c, title)
	data.Post = p
	data.Groups = groups
	data.Form = form
	data.Errors = errs
	ctl.render.HTML(c, http.StatusOK, "post_form.html", data)
}

// readImage returns the uploaded "image" file, or nil when none was sent.
func readImage(c *gin.Context) (*mediaPort.File, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, postapp.MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &mediaPort.File{Filename: fh.Filename, Data: data}, nil
}
