package httpapi

import (
	"net/http"

	"inkwell/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController { return &CommentController{cc: cc} }

func (ctl *CommentController) AddComment(c *gin.Context) {
	var req struct {
		Text string `form:"text" json:"text"`
	}
	if err := c.ShouldBind(&req); err != nil {
		badInput(c)
		return
	}
	postID := c.Param("id")
	if _, err := ctl.cc.AddComment(c.Request.Context(), middleware.UserID(c), postID, req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+postID+"/")
}
