package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ajdiallo/chopnow/internal/server/http/handlers"
	"github.com/ajdiallo/chopnow/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderingFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	couponHandler := handlers.NewCouponHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	// Webhooks authenticate by signature, not by session.
	api.POST("/webhooks/:provider", paymentHandler.Webhook)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/orders", orderHandler.Checkout)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	authed.POST("/orders/:id/cancel", orderHandler.Cancel)
	authed.POST("/orders/:id/coupon", couponHandler.Apply)
	authed.DELETE("/orders/:id/coupon", couponHandler.Remove)
	authed.POST("/coupons/validate", couponHandler.Validate)
	authed.POST("/orders/:id/payment", paymentHandler.Initialize)
	authed.POST("/orders/:id/charge", paymentHandler.Charge)
	authed.GET("/payments/:reference", paymentHandler.Verify)
	authed.GET("/instruments", paymentHandler.Instruments)

	return engine
}
