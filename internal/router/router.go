// Package router assembles the HTTP surface: global middleware, the public
// auth endpoints and the token-protected API groups.
package router

import (
	"github.com/lturcios/turicash-backend/internal/config"
	"github.com/lturcios/turicash-backend/internal/handler"
	"github.com/lturcios/turicash-backend/internal/middleware"
	"github.com/lturcios/turicash-backend/internal/token"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Tickets   *handler.TicketHandler
	Locations *handler.LocationHandler
	Items     *handler.ItemHandler
	Users     *handler.UserHandler
	Dashboard *handler.DashboardHandler
}

func New(cfg *config.Config, issuer *token.Issuer, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.CORS(),
	)

	r.GET("/health", h.Health.Check)
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(issuer))
	{
		protected.POST("/tickets/sync", h.Tickets.Sync)
		protected.GET("/tickets", h.Tickets.List)
		protected.GET("/tickets/:id/items", h.Tickets.Items)

		protected.GET("/locations", h.Locations.List)
		protected.POST("/locations", h.Locations.Create)
		protected.PUT("/locations/:id", h.Locations.Update)
		protected.DELETE("/locations/:id", h.Locations.Delete)

		protected.GET("/items", h.Items.List)
		protected.GET("/items/active", h.Items.ListMine)
		protected.POST("/items", h.Items.Create)
		protected.PUT("/items/:id", h.Items.Update)
		protected.DELETE("/items/:id", h.Items.Delete)

		protected.GET("/users", h.Users.List)
		protected.POST("/users", h.Users.Create)
		protected.PUT("/users/:id", h.Users.Update)
		protected.DELETE("/users/:id", h.Users.Delete)

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/stats", h.Dashboard.Stats)
			dashboard.GET("/sales-by-period", h.Dashboard.SalesByPeriod)
			dashboard.GET("/top-items", h.Dashboard.TopItems)
			dashboard.GET("/sales-by-location", h.Dashboard.SalesByLocation)
			dashboard.GET("/sales-by-user", h.Dashboard.SalesByUser)
			dashboard.GET("/payment-methods", h.Dashboard.PaymentMethods)
			dashboard.GET("/recent-activity", h.Dashboard.RecentActivity)
			dashboard.GET("/sales-today", h.Dashboard.SalesToday)
			dashboard.GET("/hourly-sales", h.Dashboard.HourlySales)
		}
	}

	return r
}
