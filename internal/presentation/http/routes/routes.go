package routes

import (
	"time"

	"github.com/dsouzac/quotify-api/internal/config"
	"github.com/dsouzac/quotify-api/internal/presentation/http/handler"
	"github.com/dsouzac/quotify-api/internal/presentation/http/middleware"
	"github.com/dsouzac/quotify-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Client  *handler.ClientHandler
	Company *handler.CompanyHandler
	Catalog *handler.CatalogHandler
	Quote   *handler.QuoteHandler
	Sale    *handler.SaleHandler
	Audit   *handler.AuditHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile
	protected.GET("/profile", h.Auth.Profile)

	// Clients
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}

	// Companies
	companies := protected.Group("/companies")
	{
		companies.GET("", h.Company.List)
		companies.POST("", h.Company.Create)
		companies.GET("/:id", h.Company.Get)
		companies.PUT("/:id", h.Company.Update)
		companies.DELETE("/:id", h.Company.Delete)
	}

	// Service catalog
	services := protected.Group("/services")
	{
		services.GET("", h.Catalog.List)
		services.POST("", h.Catalog.Create)
		services.GET("/:id", h.Catalog.Get)
		services.PUT("/:id", h.Catalog.Update)
		services.DELETE("/:id", h.Catalog.Delete)
	}

	// Quotes
	quotes := protected.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", h.Quote.Create)
		quotes.POST("/start", h.Quote.Start)
		quotes.GET("/:id", h.Quote.Get)
		quotes.DELETE("/:id", h.Quote.Delete)
		quotes.POST("/:id/items", h.Quote.AddItem)
		quotes.PUT("/:id/items/:serviceId", h.Quote.SetItemQuantity)
		quotes.DELETE("/:id/items/:serviceId", h.Quote.RemoveItem)
		quotes.POST("/:id/finalize", h.Quote.Finalize)
		quotes.PATCH("/:id/status", h.Quote.SetStatus)
		quotes.POST("/:id/convert", h.Quote.Convert)
		quotes.POST("/:id/email", h.Quote.SendEmail)
	}

	// Sales
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
	}

	// Audit log (admin only)
	protected.GET("/audit-logs", middleware.RequireRole("admin"), h.Audit.List)
}
