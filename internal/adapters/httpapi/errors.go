package httpapi

import (
	"errors"
	"net/http"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes err with the status its code maps to.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.NewInternalError(err)
	}

	switch appErr.Code {
	case apperror.CodeValidation:
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{appErr.Field: appErr.Message}})
	case apperror.CodeForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": appErr.Message})
	case apperror.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
	case apperror.CodeConflict:
		c.JSON(http.StatusConflict, gin.H{"error": appErr.Message})
	case apperror.CodeDangling:
		config.Logger.Warn("Dangling reference", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": "referenced object no longer exists"})
	default:
		config.Logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badInput(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
}
