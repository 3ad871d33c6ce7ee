package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/boutiq/storefront/internal/server/http/handlers"
	"github.com/boutiq/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CommerceFacade, health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade, logger)
	paymentHandler := handlers.NewPaymentHandler(facade, logger)
	productHandler := handlers.NewProductHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(health, logger)

	engine.GET("/health", healthHandler.Check)

	adminOnly := middleware.AdminRequired(facade)

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.GetByID)
	api.POST("/products", adminOnly, productHandler.Create)
	api.PUT("/products/:id", adminOnly, productHandler.Update)
	api.PATCH("/products/:id/stock", adminOnly, productHandler.SetStock)

	api.POST("/orders", orderHandler.Create)
	api.GET("/orders", adminOnly, orderHandler.List)
	api.GET("/orders/:id", orderHandler.GetByID)
	api.GET("/orders/:id/:value", orderHandler.Lookup)
	api.PATCH("/orders/:id/status", adminOnly, orderHandler.UpdateStatus)

	payment := api.Group("/payment")
	payment.POST("/checkout", paymentHandler.Checkout)
	payment.GET("/verify/:sessionId", paymentHandler.Verify)
	payment.POST("/webhook", paymentHandler.Webhook)

	return engine
}
