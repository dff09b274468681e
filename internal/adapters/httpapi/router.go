package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	"yatube/internal/core/comment"
	"yatube/internal/core/feed"
	"yatube/internal/core/follower"
	"yatube/internal/core/group"
	"yatube/internal/core/pagination"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
	commentPort "yatube/internal/ports/comment"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// Inbound ports used by the controllers.

type UserUseCase interface {
	Register(ctx context.Context, in userPort.SignupInput) (*user.User, error)
	Login(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

type PostUseCase interface {
	Get(ctx context.Context, username, slug string) (*post.Post, error)
	Create(ctx context.Context, actor *user.User, in postPort.PostInput) (*post.Post, error)
	Edit(ctx context.Context, actor *user.User, username, slug string, in postPort.PostEditInput) (*post.Post, error)
	Delete(ctx context.Context, actor *user.User, username, slug string) error
}

type CommentUseCase interface {
	Add(ctx context.Context, actor *user.User, username, slug string, in commentPort.CommentInput) (*comment.Comment, error)
	Delete(ctx context.Context, actor *user.User, id string) (*comment.Comment, error)
	ListForPost(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error)
}

type GroupUseCase interface {
	Create(ctx context.Context, actor *user.User, in groupPort.GroupInput) (*group.Group, error)
	ListModerated(ctx context.Context, page string) (pagination.Page[*group.Group], error)
	All(ctx context.Context) ([]*group.Group, error)
}

type FollowerUseCase interface {
	FollowAuthor(ctx context.Context, viewer *user.User, username string) error
	UnfollowAuthor(ctx context.Context, viewer *user.User, username string) error
	FollowGroup(ctx context.Context, viewer *user.User, slug string) error
	UnfollowGroup(ctx context.Context, viewer *user.User, slug string) error
	CountFollowers(ctx context.Context, t follower.Target) (int, error)
}

type FeedUseCase interface {
	Compose(ctx context.Context, scope feed.Scope, viewer *user.User, page string) (*feed.Feed, error)
}

// SetupRoutes wires controllers to routes. Use cases are injected.
func SetupRoutes(
	renderer *Renderer,
	userUC UserUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
	groupUC GroupUseCase,
	followerUC FollowerUseCase,
	feedUC FeedUseCase,
	pageCache middleware.PageCache,
	mediaRoot string,
) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(
		middleware.RequestLogger(config.Logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			config.Logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
			renderer.HTML(c, http.StatusInternalServerError, "500.html", &PageData{Title: "Server error"})
			c.Abort()
		}),
		middleware.Metrics(),
		middleware.Viewer(userUC),
	)
	r.NoRoute(renderer.NotFound)

	uc := NewUserController(userUC, renderer)
	fdc := NewFeedController(feedUC, followerUC, renderer)
	pc := NewPostController(postUC, commentUC, groupUC, renderer)
	cc := NewCommentController(commentUC, renderer)
	gc := NewGroupController(groupUC, renderer)
	fc := NewFollowerController(followerUC, renderer)
	auth := middleware.LoginRequired()

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if mediaRoot != "" {
		r.Static("/media", mediaRoot)
	}

	// global feed: shared by every viewer and cached
	r.GET("/", middleware.CachePage(pageCache), fdc.Index)

	r.GET("/auth/signup/", uc.SignupForm)
	r.POST("/auth/signup/", uc.Signup)
	r.GET("/auth/login/", uc.LoginForm)
	r.POST("/auth/login/", uc.Login)
	r.GET("/auth/logout/", uc.Logout)
	r.POST("/auth/logout/", uc.Logout)

	r.GET("/group_list/", gc.List)
	r.GET("/create_group/", auth, gc.NewGroup)
	r.POST("/create_group/", auth, gc.CreateGroup)
	r.GET("/group/:slug/", fdc.Group)

	r.GET("/create_post/", auth, pc.NewPost)
	r.POST("/create_post/", auth, pc.CreatePost)
	r.POST("/delete_post/:slug/", auth, pc.DeletePost)
	r.POST("/delete_comment/:id/", auth, cc.DeleteComment)

	r.GET("/follow/:username/", fdc.Followed)

	// below, :username is a group slug on the /group/ routes
	r.GET("/:username/", fdc.Profile)
	r.GET("/:username/follows/", fdc.Followed)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/:username/follow/", auth, fc.FollowAuthor)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/:username/unfollow/", auth, fc.UnfollowAuthor)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/:username/group/follow/", auth, fc.FollowGroup)
	r.Match([]string{http.MethodGet, http.MethodPost}, "/:username/group/unfollow/", auth, fc.UnfollowGroup)

	r.GET("/:username/:post_slug/", pc.Detail)
	r.POST("/:username/:post_slug/", pc.AddComment)
	r.POST("/:username/:post_slug/comment/", pc.AddComment)
	r.GET("/:username/:post_slug/edit/", auth, pc.EditForm)
	r.POST("/:username/:post_slug/edit/", auth, pc.EditPost)

	return r
}
