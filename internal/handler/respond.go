package handler

import (
	"github.com/Baaaki/store-rating/internal/apperror"
	"github.com/Baaaki/store-rating/internal/middleware"
	"github.com/Baaaki/store-rating/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes the { "error": "..." } envelope for err. Internal
// causes are logged and never reach the client.
func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		logger.Log.Error("Request failed",
			zap.String("route", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(kind.HTTPStatus(), gin.H{
		"error": apperror.PublicMessage(err),
	})
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// currentUserID reads the authenticated id; routes using it always sit
// behind AuthMiddleware.
func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, apperror.Authentication("Unauthorized"))
	}
	return id, ok
}
