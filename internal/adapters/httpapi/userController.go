package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inkwell/internal/adapters/httpapi/middleware"
	userapp "inkwell/internal/core/user/service"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

// LoginPage is where LoginRequired sends anonymous callers.
func (ctl *UserController) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"detail": "login required", "next": c.Query("next")})
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		badInput(c)
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, userapp.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(time.Until(time.Unix(res.ExpiresAt, 0)).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, res.Token, maxAge, "/", "", false, true)

	if next := c.Query("next"); isLocalPath(next) {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		Name     string `form:"name" json:"name"`
		Username string `form:"username" json:"username"`
		Password string `form:"password" json:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		badInput(c)
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.Name, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"detail": "logged out"})
}

// isLocalPath reports whether next stays on this host. Browsers read a
// backslash as a slash and drop tabs and newlines, so those are refused.
func isLocalPath(next string) bool {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return false
	}
	if strings.ContainsAny(next, "\\\t\r\n") {
		return false
	}
	u, err := url.Parse(next)
	return err == nil && u.Scheme == "" && u.Host == ""
}
