package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi"
	mediaadapter "yatube/internal/adapters/media"
	redisadapter "yatube/internal/adapters/redis"
	"yatube/internal/config"
	commentapp "yatube/internal/core/comment/service"
	feedapp "yatube/internal/core/feed/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	pagecacheapp "yatube/internal/core/pagecache/service"
	postapp "yatube/internal/core/post/service"
	userapp "yatube/internal/core/user/service"
	mediaPort "yatube/internal/ports/media"
)

const mainPageCachePrefix = "main_page"

func main() {
	settings, err := config.Load()
	config.InitLogger(os.Getenv("APP_ENV"))
	if err != nil {
		config.Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	if settings.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.InitDB(settings); err != nil {
		config.Logger.Fatal("Error connecting to the database", zap.Error(err))
	}
	if err := dbadapter.AutoMigrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("✅ Database migrations completed")

	if err := config.InitRedis(ctx, settings); err != nil {
		config.Logger.Fatal("Error connecting to Redis", zap.Error(err))
	}

	media, mediaRoot, err := newMediaStore(ctx, settings)
	if err != nil {
		config.Logger.Fatal("Error configuring media storage", zap.Error(err))
	}

	defer closeResources(config.Logger, media)

	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(config.DB)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(config.DB)
	pageStore := redisadapter.NewPageStoreRedis(config.RedisClient)

	userSvc := userapp.NewUserService(userRepo, []byte(settings.JWTSecret))
	groupSvc := groupapp.NewGroupService(groupRepo)
	postSvc := postapp.NewPostService(postRepo, userRepo, groupRepo, media)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo, userRepo)
	followerSvc := followerapp.NewFollowerService(followerRepo, userRepo, groupRepo)
	feedSvc := feedapp.NewFeedService(postRepo, userRepo, groupRepo, followerSvc)
	pageCacheSvc := pagecacheapp.NewPageCacheService(pageStore, mainPageCachePrefix, settings.PageCacheTTL)

	renderer, err := httpapi.NewRenderer(media.URL)
	if err != nil {
		config.Logger.Fatal("Error parsing templates", zap.Error(err))
	}
	r := httpapi.SetupRoutes(renderer, userSvc, postSvc, commentSvc, groupSvc, followerSvc, feedSvc, pageCacheSvc, mediaRoot)

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			config.Logger.Error("Error shutting down server", zap.Error(err))
		}
	}()

	config.Logger.Info("App is running...", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		config.Logger.Fatal("Server failed to start", zap.Error(err))
	}
}

// newMediaStore picks GCS when MEDIA_BUCKET is set, otherwise local disk
// served under /media. The second result is the directory to serve.
func newMediaStore(ctx context.Context, s *config.Settings) (mediaPort.Store, string, error) {
	if s.MediaBucket != "" {
		store, err := mediaadapter.NewGCSStore(ctx, s.MediaBucket)
		if err != nil {
			return nil, "", err
		}
		config.Logger.Info("✅ Media stored in GCS", zap.String("bucket", s.MediaBucket))
		return store, "", nil
	}
	if err := os.MkdirAll(s.MediaRoot, 0o755); err != nil {
		return nil, "", err
	}
	return mediaadapter.NewLocalStore(s.MediaRoot, "/media"), s.MediaRoot, nil
}

// closeResources closes the media client, Redis and the database.
func closeResources(logger *zap.Logger, media mediaPort.Store) {
	if c, ok := media.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Error("Error closing media storage", zap.Error(err))
		}
	}
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
	_ = logger.Sync()
}
