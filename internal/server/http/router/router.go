package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	adminOrderHandler := handlers.NewAdminOrderHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	requireUser := middleware.AuthRequired(facade)
	requireAdmin := middleware.AdminRequired(facade)

	api := engine.Group("/api/v1")
	api.GET("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)

	productAdmin := products.Group("/admin", requireUser, requireAdmin)
	productAdmin.POST("", productHandler.Create)
	productAdmin.PUT("/:id", productHandler.Update)
	productAdmin.DELETE("/:id", productHandler.Delete)

	orders := api.Group("/orders", requireUser)
	orders.POST("", orderHandler.Place)
	orders.GET("/mine", orderHandler.Mine)
	orders.GET("/:id", orderHandler.Get)
	orders.DELETE("/:id/cancel", orderHandler.Cancel)

	orderAdmin := orders.Group("/admin", requireAdmin)
	orderAdmin.GET("", adminOrderHandler.List)
	orderAdmin.PUT("/:id", adminOrderHandler.UpdateStatus)
	orderAdmin.DELETE("/:id", adminOrderHandler.Delete)

	api.POST("/payments/khalti/verify", requireUser, paymentHandler.VerifyKhalti)

	return engine
}
