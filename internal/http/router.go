package api

import (
	"log"
	stdhttp "net/http"

	intconfig "freightapi/internal/config"
	h "freightapi/internal/http/handlers"
	"freightapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetEnv(env)
	secret := []byte(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.RequireAuth(secret), h.Me)

		// Services: reads are public, mutations admin-only.
		servicesGrp := api.Group("/services")
		servicesGrp.GET("", h.ListServices)
		servicesGrp.GET("/:id", h.GetService)

		servicesAdmin := servicesGrp.Group("")
		servicesAdmin.Use(middleware.RequireAuth(secret), middleware.RequireRoles("admin"))
		servicesAdmin.POST("", h.CreateService)
		servicesAdmin.PUT("/:id", h.UpdateService)
		servicesAdmin.DELETE("/:id", h.DeleteService)

		// Bookings
		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireAuth(secret))
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/request-cancel", h.RequestBookingCancellation)
		bookings.POST("/:id/pay/initiate", h.InitiatePayment)
		bookings.POST("/:id/pay/verify", h.VerifyPayment)
		bookings.GET("/:id/receipt", h.DownloadReceipt)
		bookings.PUT("/:id/status", middleware.RequireRoles("admin"), h.UpdateBookingStatus)

		// Notifications
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth(secret))
		notifications.GET("", h.ListNotifications)
		notifications.PUT("/read-all", h.MarkAllNotificationsRead)
		notifications.PUT("/:id/read", h.MarkNotificationRead)
	}

	h.SetRouter(r)
	return r
}
