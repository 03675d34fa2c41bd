package httpapi

import (
	"net/http"

	"inkwell/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

type FollowController struct{ fc FollowUseCase }

func NewFollowController(fc FollowUseCase) *FollowController { return &FollowController{fc: fc} }

func (ctl *FollowController) Follow(c *gin.Context) {
	username := c.Param("username")
	if err := ctl.fc.Follow(c.Request.Context(), middleware.UserID(c), username); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

func (ctl *FollowController) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := ctl.fc.Unfollow(c.Request.Context(), middleware.UserID(c), username); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}
