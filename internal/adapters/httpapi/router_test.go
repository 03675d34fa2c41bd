package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"inkwell/internal/adapters/database"
	"inkwell/internal/adapters/httpapi"
	"inkwell/internal/adapters/media"
	redisAdapter "inkwell/internal/adapters/redis"
	commentapp "inkwell/internal/core/comment/service"
	contactapp "inkwell/internal/core/contact/service"
	feedapp "inkwell/internal/core/feed/service"
	followapp "inkwell/internal/core/follow/service"
	groupapp "inkwell/internal/core/group/service"
	postapp "inkwell/internal/core/post/service"
	userapp "inkwell/internal/core/user/service"
	postPort "inkwell/internal/ports/post"
	"inkwell/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

type app struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	cache  *redisAdapter.PageCacheRedis
	redis  *miniredis.Miniredis
	posts  *postapp.PostService
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	mediaRoot := t.TempDir()
	storage := media.NewFileStorage(mediaRoot, "/media/")
	users := database.NewUserRepositoryDatabase(db)
	posts := database.NewPostRepositoryDatabase(db)
	groups := database.NewGroupRepositoryDatabase(db)
	comments := database.NewCommentRepositoryDatabase(db)
	follows := database.NewFollowRepositoryDatabase(db)

	postService := postapp.NewPostService(posts, groups, storage, 1<<20)
	postService.Now = testutil.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Now
	cache := redisAdapter.NewPageCacheRedis(client)

	router := httpapi.SetupRoutes(httpapi.UseCases{
		User:    userapp.NewUserService(users, []byte("test-secret")),
		Post:    postService,
		Comment: commentapp.NewCommentService(comments, posts),
		Feed:    feedapp.NewFeedService(posts, groups, users, comments, follows, storage.URL),
		Follow:  followapp.NewFollowService(follows, users),
		Group:   groupapp.NewGroupService(groups),
		Contact: contactapp.NewContactService(database.NewContactRepositoryDatabase(db)),
	}, httpapi.Options{
		JWTSecret:     []byte("test-secret"),
		PageCache:     cache,
		IndexCacheTTL: 20 * time.Second,
		MediaRoot:     mediaRoot,
		MediaURL:      "/media/",
	})

	return &app{t: t, db: db, router: router, cache: cache, redis: mr, posts: postService}
}

func (a *app) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) get(target, token string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, target, nil), token)
}

func (a *app) postForm(target, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req, token)
}

func (a *app) postJSON(target, token string, body interface{}) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	require.NoError(a.t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, token)
}

// signup registers username and returns a bearer token for it.
func (a *app) signup(username string) string {
	w := a.postJSON("/auth/signup/", "", gin.H{"username": username, "password": "long-password"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.postJSON("/auth/login/", "", gin.H{"username": username, "password": "long-password"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Token
}

func (a *app) createPost(token, text string) {
	w := a.postForm("/create/", token, url.Values{"text": {text}})
	require.Equal(a.t, http.StatusFound, w.Code, w.Body.String())
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestCreatePostWithImage_ShowsOnProfileAndDetail(t *testing.T) {
	a := newApp(t)
	token := a.signup("leo")
	testutil.CreateGroup(t, a.db, "cats")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("text", "A cat picture"))
	require.NoError(t, mw.WriteField("group", "cats"))
	part, err := mw.CreateFormFile("image", "small.gif")
	require.NoError(t, err)
	_, err = part.Write(smallGIF)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/create/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := a.do(req, token)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))

	var profile postPort.ProfileDTO
	decode(t, a.get("/profile/leo/", ""), &profile)
	assert.EqualValues(t, 1, profile.PostsCount)
	require.Len(t, profile.Page.Posts, 1)
	p := profile.Page.Posts[0]
	assert.Equal(t, "posts/small.gif", p.Image)
	assert.Equal(t, "/media/posts/small.gif", p.ImageURL)
	assert.Equal(t, "cats", p.Group.Slug)

	var detail postPort.PostDetailDTO
	decode(t, a.get("/posts/"+p.ID+"/", ""), &detail)
	assert.Equal(t, "/media/posts/small.gif", detail.Post.ImageURL)
	assert.EqualValues(t, 1, detail.PostsCount)

	var feed postPort.GroupFeedDTO
	decode(t, a.get("/group/cats/", ""), &feed)
	assert.Len(t, feed.Page.Posts, 1)

	w = a.get("/media/posts/small.gif", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, smallGIF, w.Body.Bytes())
}

func TestFollowFeed(t *testing.T) {
	a := newApp(t)
	leo := a.signup("leo")
	mia := a.signup("mia")
	bo := a.signup("bo")
	a.createPost(leo, "by leo")

	w := a.postForm("/profile/leo/follow/", mia, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))

	var feed postPort.IndexDTO
	decode(t, a.get("/follow/", mia), &feed)
	require.Len(t, feed.Page.Posts, 1)
	assert.Equal(t, "by leo", feed.Page.Posts[0].Text)

	decode(t, a.get("/follow/", bo), &feed)
	assert.Empty(t, feed.Page.Posts)

	var profile postPort.ProfileDTO
	decode(t, a.get("/profile/leo/", mia), &profile)
	assert.True(t, profile.Following)

	require.Equal(t, http.StatusFound, a.get("/profile/leo/unfollow/", mia).Code)
	decode(t, a.get("/follow/", mia), &feed)
	assert.Empty(t, feed.Page.Posts)
}

func TestFollow_SelfAndTwiceAreNoOps(t *testing.T) {
	a := newApp(t)
	leo := a.signup("leo")
	mia := a.signup("mia")

	assert.Equal(t, http.StatusFound, a.get("/profile/leo/follow/", leo).Code)
	assert.Equal(t, http.StatusFound, a.get("/profile/leo/follow/", mia).Code)
	assert.Equal(t, http.StatusFound, a.get("/profile/leo/follow/", mia).Code)
	assert.Equal(t, http.StatusNotFound, a.get("/profile/ghost/follow/", mia).Code)

	var count int64
	require.NoError(t, a.db.Table("follows").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGuestCommentIsDropped(t *testing.T) {
	a := newApp(t)
	leo := a.signup("leo")
	a.createPost(leo, "comment me")

	var index postPort.IndexDTO
	decode(t, a.get("/", ""), &index)
	postID := index.Page.Posts[0].ID

	w := a.postForm("/posts/"+postID+"/comment/", "", url.Values{"text": {"guest"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login/?next="))

	var detail postPort.PostDetailDTO
	decode(t, a.get("/posts/"+postID+"/", ""), &detail)
	assert.Empty(t, detail.Comments)

	w = a.postForm("/posts/"+postID+"/comment/", leo, url.Values{"text": {"mine"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+postID+"/", w.Header().Get("Location"))

	decode(t, a.get("/posts/"+postID+"/", ""), &detail)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "mine", detail.Comments[0].Text)
}

func TestIndexIsCached(t *testing.T) {
	a := newApp(t)
	leo := a.signup("leo")
	a.createPost(leo, "first")

	first := a.get("/", "")
	require.Equal(t, http.StatusOK, first.Code)

	a.createPost(leo, "second")
	again := a.get("/", "")
	assert.Equal(t, first.Body.Bytes(), again.Body.Bytes())

	require.NoError(t, a.cache.Clear(context.Background()))
	fresh := a.get("/", "")
	assert.NotEqual(t, first.Body.Bytes(), fresh.Body.Bytes())

	a.createPost(leo, "third")
	a.redis.FastForward(21 * time.Second)
	var index postPort.IndexDTO
	decode(t, a.get("/", ""), &index)
	assert.Equal(t, "third", index.Page.Posts[0].Text)
}

func TestEditPost_NonAuthorForbidden(t *testing.T) {
	a := newApp(t)
	leo := a.signup("leo")
	mia := a.signup("mia")
	a.createPost(leo, "original")

	var index postPort.IndexDTO
	decode(t, a.get("/", ""), &index)
	postID := index.Page.Posts[0].ID

	assert.Equal(t, http.StatusForbidden, a.get("/posts/"+postID+"/edit/", mia).Code)
	assert.Equal(t, http.StatusForbidden, a.postForm("/posts/"+postID+"/edit/", mia, url.Values{"text": {"hijack"}}).Code)
	assert.Equal(t, http.StatusForbidden, a.postForm("/posts/"+postID+"/delete/", mia, nil).Code)

	w := a.postForm("/posts/"+postID+"/edit/", leo, url.Values{"text": {"edited"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+postID+"/", w.Header().Get("Location"))

	var detail postPort.PostDetailDTO
	decode(t, a.get("/posts/"+postID+"/", ""), &detail)
	assert.Equal(t, "edited", detail.Post.Text)

	w = a.postForm("/posts/"+postID+"/delete/", leo, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))
	assert.Equal(t, http.StatusNotFound, a.get("/posts/"+postID+"/", "").Code)
}

func TestCreatePost_Errors(t *testing.T) {
	a := newApp(t)
	leo := a.signup("leo")

	w := a.postForm("/create/", "", url.Values{"text": {"anon"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", w.Header().Get("Location"))

	w = a.postForm("/create/", leo, url.Values{"text": {" "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":{"text":"this field is required"}}`, w.Body.String())

	w = a.postForm("/create/", leo, url.Values{"text": {"hi"}, "group": {"nope"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"group"`)

	assert.Equal(t, http.StatusOK, a.get("/create/", leo).Code)
}

func TestNotFoundPages(t *testing.T) {
	a := newApp(t)

	w := a.get("/no/such/page/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"page not found"}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, a.get("/group/unknown/", "").Code)
	assert.Equal(t, http.StatusNotFound, a.get("/profile/unknown/", "").Code)
	assert.Equal(t, http.StatusNotFound, a.get("/posts/00000000-0000-0000-0000-000000000000/", "").Code)
}

func TestPagination(t *testing.T) {
	a := newApp(t)
	leo := a.signup("leo")
	for i := 0; i < 13; i++ {
		a.createPost(leo, fmt.Sprintf("post %02d", i))
	}

	var index postPort.IndexDTO
	decode(t, a.get("/?page=2", ""), &index)
	assert.Len(t, index.Page.Posts, 3)
	assert.Equal(t, 2, index.Page.Number)

	decode(t, a.get("/", ""), &index)
	assert.Len(t, index.Page.Posts, 10)
	assert.Equal(t, "post 12", index.Page.Posts[0].Text)

	var profile postPort.ProfileDTO
	decode(t, a.get("/profile/leo/?page=last", ""), &profile)
	assert.Equal(t, 1, profile.Page.Number)
	decode(t, a.get("/profile/leo/?page=50", ""), &profile)
	assert.Equal(t, 2, profile.Page.Number)
	assert.Len(t, profile.Page.Posts, 3)
}

func TestContact(t *testing.T) {
	a := newApp(t)

	w := a.postForm("/contact/", "", url.Values{
		"name": {"Leo"}, "email": {"leo@example.com"}, "subject": {"Hi"}, "body": {"Hello there"},
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.postForm("/contact/", "", url.Values{
		"name": {"Leo"}, "email": {"nope"}, "subject": {"Hi"}, "body": {"Hello there"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"email"`)
}

func TestLogin(t *testing.T) {
	a := newApp(t)
	a.signup("leo")

	w := a.postJSON("/auth/login/", "", gin.H{"username": "leo", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.postForm("/auth/login/?next=/follow/", "", url.Values{"username": {"leo"}, "password": {"long-password"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/follow/", w.Header().Get("Location"))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/follow/", nil)
	req.AddCookie(cookie)
	assert.Equal(t, http.StatusOK, a.do(req, "").Code)
}

func TestLogin_IgnoresForeignNext(t *testing.T) {
	a := newApp(t)
	a.signup("leo")

	for _, next := range []string{`/\evil.example`, "//evil.example", "https://evil.example/", "/\t/evil.example"} {
		t.Run(next, func(t *testing.T) {
			w := a.postForm("/auth/login/?next="+url.QueryEscape(next), "", url.Values{"username": {"leo"}, "password": {"long-password"}})
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Header().Get("Location"))
		})
	}
}

func TestDeletedAccountTokenIsAnonymous(t *testing.T) {
	a := newApp(t)
	a.signup("leo")
	mia := a.signup("mia")
	require.NoError(t, database.NewUserRepositoryDatabase(a.db).DeleteByUsername(context.Background(), "mia"))

	w := a.get("/profile/leo/follow/", mia)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login/?next="))

	w = a.postForm("/create/", mia, url.Values{"text": {"ghost post"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", w.Header().Get("Location"))

	var follows, posts int64
	require.NoError(t, a.db.Table("follows").Count(&follows).Error)
	require.NoError(t, a.db.Table("posts").Count(&posts).Error)
	assert.Zero(t, follows)
	assert.Zero(t, posts)
}
