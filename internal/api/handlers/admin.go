package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/service"
)

// HandleCatalogSync handles POST /v1/admin/catalog/sync
func HandleCatalogSync(syncer *service.CatalogSyncer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if syncer == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storefront sync is not configured"})
			return
		}

		result, err := syncer.RunOnce(c.Request.Context())
		if err != nil {
			logger.Error("Manual catalog sync failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog sync failed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
