package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/api/handler"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	accountHandler *handler.AccountHandler,
	purchaseHandler *handler.PurchaseHandler,
	promoHandler *handler.PromoHandler,
	healthHandler *handler.HealthHandler,
) {
	// Liveness
	router.GET("/", healthHandler.Root)
	router.GET("/api", healthHandler.Root)
	router.GET("/health", healthHandler.Health)

	// Marketplace routes
	api := router.Group("/api")
	{
		api.POST("/user", accountHandler.UpsertAccount)

		userRoutes := api.Group("/user/:userId")
		{
			userRoutes.GET("", accountHandler.GetAccount)
			userRoutes.GET("/balance", accountHandler.GetBalance)
			userRoutes.POST("/deposit", accountHandler.Deposit)
			userRoutes.GET("/transactions", accountHandler.ListTransactions)
			userRoutes.GET("/gifts", purchaseHandler.ListGifts)
			userRoutes.POST("/purchase", purchaseHandler.Purchase)
			userRoutes.POST("/redeem", promoHandler.Redeem)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
