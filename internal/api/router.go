package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/api/handlers"
	"github.com/jafarshop/topup/internal/api/middleware"
	"github.com/jafarshop/topup/internal/config"
	"github.com/jafarshop/topup/internal/service"
)

// NewRouter creates and configures the Gin router. syncer may be nil when no storefront is configured.
func NewRouter(cfg *config.Config, svc *service.DraftService, syncer *service.CatalogSyncer, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Top-up Order Draft API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/products",
				"GET /v1/products/:slug/catalog",
				"GET /v1/products/:slug/draft",
				"PATCH /v1/products/:slug/draft",
				"POST /v1/products/:slug/draft/submit",
				"POST /v1/admin/catalog/sync",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/products", handlers.HandleListProducts(svc, logger))
		v1.GET("/products/:slug/catalog", handlers.HandleGetProductCatalog(svc, logger))

		// Draft routes are scoped to the caller's session
		draftRoutes := v1.Group("/products/:slug/draft")
		draftRoutes.Use(middleware.SessionMiddleware(cfg.Session, logger))
		{
			draftRoutes.GET("", handlers.HandleGetDraft(svc, logger))
			draftRoutes.PATCH("", handlers.HandlePatchDraft(svc, logger))
			draftRoutes.POST("/submit", handlers.HandleSubmitDraft(svc, logger))
		}

		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg.API.AdminKeyHash, logger))
		{
			adminRoutes.POST("/catalog/sync", handlers.HandleCatalogSync(syncer, logger))
		}
	}

	return router
}

// Compress gzips responses for clients that accept it. Small bodies pass through untouched.
func Compress(h http.Handler) http.Handler {
	return gzhttp.GzipHandler(h)
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
