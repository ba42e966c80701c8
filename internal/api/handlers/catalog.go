package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/service"
)

// HandleListProducts handles GET /v1/products
func HandleListProducts(svc *service.DraftService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := svc.ListProducts()
		logger.Debug("Catalog listed", zap.Int("count", len(products)))
		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

// HandleGetProductCatalog handles GET /v1/products/:slug/catalog
func HandleGetProductCatalog(svc *service.DraftService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetProduct(c.Param("slug"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
