package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ContactController struct{ cc ContactUseCase }

func NewContactController(cc ContactUseCase) *ContactController { return &ContactController{cc: cc} }

func (ctl *ContactController) Submit(c *gin.Context) {
	var req struct {
		Name    string `form:"name" json:"name"`
		Email   string `form:"email" json:"email"`
		Subject string `form:"subject" json:"subject"`
		Body    string `form:"body" json:"body"`
	}
	if err := c.ShouldBind(&req); err != nil {
		badInput(c)
		return
	}
	res, err := ctl.cc.Submit(c.Request.Context(), req.Name, req.Email, req.Subject, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
