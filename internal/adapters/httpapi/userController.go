package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/apperror"
	userPort "yatube/internal/ports/user"
)

type UserController struct {
	uc     UserUseCase
	render *Renderer
}

func NewUserController(uc UserUseCase, render *Renderer) *UserController {
	return &UserController{uc: uc, render: render}
}

func (ctl *UserController) SignupForm(c *gin.Context) {
	data := viewerPage(c, "Sign up")
	data.Form = map[string]string{}
	ctl.render.HTML(c, http.StatusOK, "signup.html", data)
}

func (ctl *UserController) Signup(c *gin.Context) {
	var in userPort.SignupInput
	errs := bindForm(c, &in)

	var err error
	if errs == nil {
		_, err = ctl.uc.Register(c.Request.Context(), in)
		if v, ok := apperror.AsValidation(err); ok {
			errs = v.Fields
		}
	}
	if errs != nil {
		data := viewerPage(c, "Sign up")
		data.Form = map[string]string{
			"first_name": in.FirstName,
			"last_name":  in.LastName,
			"username":   in.Username,
			"email":      in.Email,
		}
		data.Errors = errs
		ctl.render.HTML(c, http.StatusOK, "signup.html", data)
		return
	}
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, middleware.LoginURL)
}

func (ctl *UserController) LoginForm(c *gin.Context) {
	data := viewerPage(c, "Log in")
	data.Next = safeNext(c.Query("next"))
	ctl.render.HTML(c, http.StatusOK, "login.html", data)
}

func (ctl *UserController) Login(c *gin.Context) {
	var req struct {
		Username string `form:"username"`
		Password string `form:"password"`
		Next     string `form:"next"`
	}
	errs := bindForm(c, &req)

	var res *userPort.LoginResponse
	var err error
	if errs == nil {
		res, err = ctl.uc.Login(c.Request.Context(), req.Username, req.Password)
		if errors.Is(err, apperror.ErrInvalidCredentials) {
			errs = map[string]string{"__all__": "Please enter a correct username and password."}
		}
	}
	if errs != nil {
		data := viewerPage(c, "Log in")
		data.Next = safeNext(req.Next)
		data.Form = map[string]string{"username": req.Username}
		data.Errors = errs
		ctl.render.HTML(c, http.StatusOK, "login.html", data)
		return
	}
	if err != nil {
		ctl.render.Fail(c, err)
		return
	}
	middleware.SetSession(c, res.Token, res.ExpiresAt)
	c.Redirect(http.StatusFound, safeNext(req.Next))
}

func (ctl *UserController) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.Redirect(http.StatusFound, "/")
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
