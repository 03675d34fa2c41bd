package httpapi

import (
	"net/http"

	"inkwell/internal/adapters/httpapi/middleware"
	"inkwell/internal/core/pagination"
	postPort "inkwell/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type FeedController struct{ fc FeedUseCase }

func NewFeedController(fc FeedUseCase) *FeedController { return &FeedController{fc: fc} }

func pageParam(c *gin.Context) int {
	return pagination.ParseNumber(c.Query("page"))
}

func (ctl *FeedController) Index(c *gin.Context) {
	page, err := ctl.fc.ListAll(c.Request.Context(), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postPort.IndexDTO{Page: page})
}

func (ctl *FeedController) GroupPosts(c *gin.Context) {
	res, err := ctl.fc.ListByGroup(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *FeedController) Profile(c *gin.Context) {
	res, err := ctl.fc.ListByAuthor(c.Request.Context(), c.Param("username"), middleware.UserID(c), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *FeedController) PostDetail(c *gin.Context) {
	res, err := ctl.fc.PostDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// FollowIndex lists posts by the authors the caller follows.
func (ctl *FeedController) FollowIndex(c *gin.Context) {
	page, err := ctl.fc.ListFollowed(c.Request.Context(), middleware.UserID(c), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postPort.IndexDTO{Page: page})
}
