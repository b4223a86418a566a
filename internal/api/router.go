package api

import (
	v1 "github.com/billforge/billforge/internal/api/v1"
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/logger"
	"github.com/billforge/billforge/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Pricing    *v1.PricingHandler
	Slot       *v1.SlotHandler
	PlanChange *v1.PlanChangeHandler
}

// NewRouter assembles the gin engine with the standard middleware
// chain and the v1 route groups.
func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == config.ModeAPI {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestContextMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/v1")

	pricing := apiV1.Group("/pricing")
	{
		pricing.POST("/validate", handlers.Pricing.ValidatePricingModel)
		pricing.POST("/tiers/append", handlers.Pricing.AppendTier)
		pricing.POST("/tiers/remove", handlers.Pricing.RemoveTier)
		pricing.POST("/tiers/boundary", handlers.Pricing.SetTierBoundary)
	}

	subscriptions := apiV1.Group("/subscriptions")
	{
		subscriptions.POST("/fees", handlers.Pricing.CreateSubscriptionFee)

		subscriptions.POST("/:id/slots/preview", handlers.Slot.PreviewSlotChange)
		subscriptions.POST("/:id/slots", handlers.Slot.CommitSlotChange)
		subscriptions.GET("/:id/slots/transactions", handlers.Slot.ListSlotTransactions)
		subscriptions.POST("/:id/slots/transactions/:txn_id/cancel", handlers.Slot.CancelSlotTransaction)

		subscriptions.POST("/:id/plan-change/preview", handlers.PlanChange.PreviewPlanChange)
		subscriptions.POST("/:id/plan-change", handlers.PlanChange.CommitPlanChange)
	}

	return router
}
