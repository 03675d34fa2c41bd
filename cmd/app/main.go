package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "inkwell/internal/adapters/database"
	"inkwell/internal/adapters/httpapi"
	mediaadapter "inkwell/internal/adapters/media"
	redisadapter "inkwell/internal/adapters/redis"
	"inkwell/internal/config"
	commentapp "inkwell/internal/core/comment/service"
	contactapp "inkwell/internal/core/contact/service"
	feedapp "inkwell/internal/core/feed/service"
	followapp "inkwell/internal/core/follow/service"
	groupapp "inkwell/internal/core/group/service"
	postapp "inkwell/internal/core/post/service"
	userapp "inkwell/internal/core/user/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.InitLogger("development")
		config.Logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	config.InitLogger(cfg.Env)
	defer func() { _ = config.Logger.Sync() }()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		config.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := dbadapter.Migrate(db); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("✅ Database migrations completed")

	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		config.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer closeResources(config.Logger)

	storage := mediaadapter.NewFileStorage(cfg.MediaRoot, cfg.MediaURL)
	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)
	followRepo := dbadapter.NewFollowRepositoryDatabase(db)
	contactRepo := dbadapter.NewContactRepositoryDatabase(db)

	r := httpapi.SetupRoutes(httpapi.UseCases{
		User:    userapp.NewUserService(userRepo, []byte(cfg.JWTSecret)),
		Post:    postapp.NewPostService(postRepo, groupRepo, storage, cfg.MaxUploadBytes()),
		Comment: commentapp.NewCommentService(commentRepo, postRepo),
		Feed:    feedapp.NewFeedService(postRepo, groupRepo, userRepo, commentRepo, followRepo, storage.URL),
		Follow:  followapp.NewFollowService(followRepo, userRepo),
		Group:   groupapp.NewGroupService(groupRepo),
		Contact: contactapp.NewContactService(contactRepo),
	}, httpapi.Options{
		JWTSecret:     []byte(cfg.JWTSecret),
		PageCache:     redisadapter.NewPageCacheRedis(redisClient),
		IndexCacheTTL: cfg.IndexCacheTTL,
		MediaRoot:     cfg.MediaRoot,
		MediaURL:      cfg.MediaURL,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	config.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		config.Logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

// closeResources closes the Redis and database connections.
func closeResources(logger *zap.Logger) {
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
}
