package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paytrack/backend/internal/infrastructure/auth"
	"github.com/paytrack/backend/internal/infrastructure/config"
	"github.com/paytrack/backend/internal/infrastructure/logger"
	"github.com/paytrack/backend/internal/interfaces/http/handler"
	"github.com/paytrack/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the handlers mounted by the router
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Purchase *handler.PurchaseHandler
	Payment  *handler.PaymentHandler
	Report   *handler.ReportHandler
	Admin    *handler.AdminHandler
}

// Config bundles the router's dependencies
type Config struct {
	HTTP       config.HTTPConfig
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	Logger     *zap.Logger
	Handlers   Handlers
}

// New builds the gin engine with all middleware and routes mounted
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(logger.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.CORSWithOrigins(cfg.HTTP.CORSAllowOrigins))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	h := cfg.Handlers

	// Public auth routes
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	// Everything below requires a valid access token
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.Blacklist,
		Logger:         cfg.Logger,
	}))

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)

	customers := authed.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/summary", h.Report.CustomerSummaries)
		customers.POST("/bulk-import", h.Customer.BulkImport)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	purchases := authed.Group("/purchases")
	{
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.PUT("/:id", h.Purchase.Update)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}

	payments := authed.Group("/payments")
	{
		payments.GET("/upcoming", h.Payment.Upcoming)
		payments.GET("/upcoming/month", h.Payment.UpcomingMonth)
		payments.GET("/overdue", h.Payment.Overdue)
		payments.GET("/overdue-count", h.Payment.OverdueCount)
		payments.PATCH("/:id/mark-paid", h.Payment.MarkPaid)
		payments.PUT("/:id", h.Payment.Update)
	}

	authed.GET("/kpi", h.Report.KPI)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.POST("/users", h.Admin.CreateUser)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)
		admin.POST("/users/:id/reset-password", h.Admin.ResetPassword)
		admin.GET("/activity", h.Admin.Activity)
		admin.GET("/customers", h.Admin.ListCustomers)
	}

	return engine
}
