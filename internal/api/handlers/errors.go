package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/api/middleware"
	"github.com/jafarshop/topup/pkg/errors"
)

// writeError maps service errors onto HTTP responses
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var notFound *errors.ErrNotFound
	if stderrors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}

	var validation *errors.ErrValidation
	if stderrors.As(err, &validation) {
		body := gin.H{"error": validation.Error()}
		if len(validation.Fields) > 0 {
			body["fields"] = validation.Fields
		}
		if validation.Hint != "" {
			body["hint"] = validation.Hint
		}
		c.JSON(http.StatusUnprocessableEntity, body)
		return
	}

	var unavailable *errors.ErrUnavailable
	if stderrors.As(err, &unavailable) {
		logger.Warn("Backing store unavailable", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": unavailable.Error()})
		return
	}

	logger.Error("Request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func requireSession(c *gin.Context) (string, bool) {
	sessionID, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return "", false
	}
	return sessionID, true
}
