package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dispatch/internal/server/http/handlers"
	"github.com/polkiloo/dispatch/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DispatchFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	deliveryHandler := handlers.NewDeliveryHandler(facade)
	customerHandler := handlers.NewCustomerHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Check)

	api := engine.Group("/api")

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id", orderHandler.Update)
	orders.DELETE("/:id", orderHandler.Cancel)
	orders.GET("/:id/delivery", deliveryHandler.ByOrder)

	deliveries := api.Group("/deliveries")
	deliveries.GET("", deliveryHandler.List)
	deliveries.GET("/:id", deliveryHandler.Get)
	deliveries.PUT("/:id/status", deliveryHandler.SetStatus)
	deliveries.DELETE("/:id", deliveryHandler.Cancel)

	customers := api.Group("/customers")
	customers.POST("", customerHandler.Register)
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)
	customers.GET("/:id/orders", orderHandler.ListByCustomer)
	customers.POST("/:id/phones", customerHandler.AddPhone)
	customers.GET("/:id/phones", customerHandler.Phones)
	customers.POST("/:id/addresses", customerHandler.AddAddress)
	customers.GET("/:id/addresses", customerHandler.Addresses)

	api.PUT("/phones/:id", customerHandler.UpdatePhone)
	api.DELETE("/phones/:id", customerHandler.DeletePhone)
	api.PUT("/addresses/:id", customerHandler.UpdateAddress)
	api.DELETE("/addresses/:id", customerHandler.DeleteAddress)

	return engine
}
