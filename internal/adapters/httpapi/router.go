package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/adapters/httpapi/middleware"
	"inkwell/internal/metrics"
	commentPort "inkwell/internal/ports/comment"
	contactPort "inkwell/internal/ports/contact"
	groupPort "inkwell/internal/ports/group"
	"inkwell/internal/ports/pagecache"
	postPort "inkwell/internal/ports/post"
	userPort "inkwell/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// UserUseCase is the inbound port used by the auth endpoints.
type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, name, username, password string) (*userPort.UserDTO, error)
	GetByID(ctx context.Context, id string) (*userPort.UserDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, authorID, text, groupSlug string, image *postPort.ImageUpload) (*postPort.PostDTO, error)
	GetPostForEdit(ctx context.Context, editorID, postID string) (*postPort.PostDTO, error)
	EditPost(ctx context.Context, editorID, postID, text, groupSlug string, image *postPort.ImageUpload) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, editorID, postID string) error
}

type CommentUseCase interface {
	AddComment(ctx context.Context, authorID, postID, text string) (*commentPort.CommentDTO, error)
}

type FeedUseCase interface {
	ListAll(ctx context.Context, page int) (*postPort.PageDTO, error)
	ListByGroup(ctx context.Context, slug string, page int) (*postPort.GroupFeedDTO, error)
	ListByAuthor(ctx context.Context, username, viewerID string, page int) (*postPort.ProfileDTO, error)
	PostDetail(ctx context.Context, postID string) (*postPort.PostDetailDTO, error)
	ListFollowed(ctx context.Context, userID string, page int) (*postPort.PageDTO, error)
}

type FollowUseCase interface {
	Follow(ctx context.Context, followerID, authorUsername string) error
	Unfollow(ctx context.Context, followerID, authorUsername string) error
}

type GroupUseCase interface {
	ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error)
}

type ContactUseCase interface {
	Submit(ctx context.Context, name, email, subject, body string) (*contactPort.ContactDTO, error)
}

// UseCases bundles everything the router dispatches to.
type UseCases struct {
	User    UserUseCase
	Post    PostUseCase
	Comment CommentUseCase
	Feed    FeedUseCase
	Follow  FollowUseCase
	Group   GroupUseCase
	Contact ContactUseCase
}

type Options struct {
	JWTSecret     []byte
	PageCache     pagecache.PageCache
	IndexCacheTTL time.Duration
	MediaRoot     string
	MediaURL      string
}

// SetupRoutes only wires routes; the use cases are injected from outside.
func SetupRoutes(uc UseCases, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), metrics.GinMiddleware(), middleware.OptionalAuth(opts.JWTSecret, uc.User))

	auth := NewUserController(uc.User)
	fc := NewFeedController(uc.Feed)
	pc := NewPostController(uc.Post, uc.Group)
	cc := NewCommentController(uc.Comment)
	flc := NewFollowController(uc.Follow)
	ctc := NewContactController(uc.Contact)
	loginRequired := middleware.LoginRequired()

	r.GET("/", middleware.CachePage(opts.PageCache, "index", opts.IndexCacheTTL), fc.Index)
	r.GET("/group/:slug/", fc.GroupPosts)
	r.GET("/profile/:username/", fc.Profile)
	r.GET("/posts/:id/", fc.PostDetail)
	r.GET("/follow/", loginRequired, fc.FollowIndex)

	r.GET("/create/", loginRequired, pc.CreateForm)
	r.POST("/create/", loginRequired, pc.CreatePost)
	r.GET("/posts/:id/edit/", loginRequired, pc.EditForm)
	r.POST("/posts/:id/edit/", loginRequired, pc.EditPost)
	r.POST("/posts/:id/delete/", loginRequired, pc.DeletePost)
	r.POST("/posts/:id/comment/", loginRequired, cc.AddComment)

	for _, method := range []string{"GET", "POST"} {
		r.Handle(method, "/profile/:username/follow/", loginRequired, flc.Follow)
		r.Handle(method, "/profile/:username/unfollow/", loginRequired, flc.Unfollow)
	}

	r.POST("/contact/", ctc.Submit)

	r.GET("/auth/login/", auth.LoginPage)
	r.POST("/auth/login/", auth.LoginUser)
	r.POST("/auth/signup/", auth.RegisterUser)
	r.POST("/auth/logout/", auth.Logout)

	if strings.HasPrefix(opts.MediaURL, "/") && opts.MediaRoot != "" {
		r.Static(strings.TrimSuffix(opts.MediaURL, "/"), opts.MediaRoot)
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
	})

	return r
}
