package httpapi

import (
	"mime/multipart"
	"net/http"

	"inkwell/internal/adapters/httpapi/middleware"
	postPort "inkwell/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	pc PostUseCase
	gc GroupUseCase
}

func NewPostController(pc PostUseCase, gc GroupUseCase) *PostController {
	return &PostController{pc: pc, gc: gc}
}

type postForm struct {
	Text  string `form:"text" json:"text"`
	Group string `form:"group" json:"group"`
}

// CreateForm returns what a client needs to render the new post form.
func (ctl *PostController) CreateForm(c *gin.Context) {
	groups, err := ctl.gc.ListGroups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_edit": false, "groups": groups})
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req postForm
	if err := c.ShouldBind(&req); err != nil {
		badInput(c)
		return
	}
	image, closeImage, err := imageFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeImage()

	res, err := ctl.pc.CreatePost(c.Request.Context(), middleware.UserID(c), req.Text, req.Group, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+res.Author.Username+"/")
}

func (ctl *PostController) EditForm(c *gin.Context) {
	post, err := ctl.pc.GetPostForEdit(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	groups, err := ctl.gc.ListGroups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_edit": true, "post": post, "groups": groups})
}

func (ctl *PostController) EditPost(c *gin.Context) {
	var req postForm
	if err := c.ShouldBind(&req); err != nil {
		badInput(c)
		return
	}
	image, closeImage, err := imageFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeImage()

	res, err := ctl.pc.EditPost(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Text, req.Group, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+res.ID+"/")
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	post, err := ctl.pc.GetPostForEdit(ctx, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.pc.DeletePost(ctx, userID, post.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+post.Author.Username+"/")
}

// imageFromForm returns the optional "image" file of a multipart request.
func imageFromForm(c *gin.Context) (*postPort.ImageUpload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, func() {}, nil
	}
	var f multipart.File
	if f, err = fh.Open(); err != nil {
		return nil, func() {}, err
	}
	return &postPort.ImageUpload{Filename: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}
