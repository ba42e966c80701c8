package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/service"
)

// HandleGetDraft handles GET /v1/products/:slug/draft
func HandleGetDraft(svc *service.DraftService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := requireSession(c)
		if !ok {
			return
		}
		view, err := svc.GetDraft(c.Request.Context(), sessionID, c.Param("slug"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// HandlePatchDraft handles PATCH /v1/products/:slug/draft
func HandlePatchDraft(svc *service.DraftService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := requireSession(c)
		if !ok {
			return
		}

		var req service.DraftPatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		view, err := svc.UpdateDraft(c.Request.Context(), sessionID, c.Param("slug"), req)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// HandleSubmitDraft handles POST /v1/products/:slug/draft/submit.
// Nothing is stored or cleared; the response carries the summary and the deep link.
func HandleSubmitDraft(svc *service.DraftService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := requireSession(c)
		if !ok {
			return
		}
		result, err := svc.Submit(c.Request.Context(), sessionID, c.Param("slug"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
