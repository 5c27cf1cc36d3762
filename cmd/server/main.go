package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	billingapp "github.com/paytrack/backend/internal/application/billing"
	crmapp "github.com/paytrack/backend/internal/application/crm"
	identityapp "github.com/paytrack/backend/internal/application/identity"
	reportapp "github.com/paytrack/backend/internal/application/report"
	"github.com/paytrack/backend/internal/infrastructure/auth"
	"github.com/paytrack/backend/internal/infrastructure/config"
	"github.com/paytrack/backend/internal/infrastructure/logger"
	"github.com/paytrack/backend/internal/infrastructure/persistence"
	"github.com/paytrack/backend/internal/interfaces/http/handler"
	"github.com/paytrack/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Token blacklist: Redis when reachable, in-memory otherwise.
	// Local development does not require a Redis instance.
	blacklist := newTokenBlacklist(cfg, log)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Initialize application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	customerService := crmapp.NewCustomerService(customerRepo)
	importService := crmapp.NewCustomerImportService(customerRepo, log)
	purchaseService := billingapp.NewPurchaseService(purchaseRepo, paymentRepo, customerRepo)
	paymentService := billingapp.NewPaymentService(paymentRepo, purchaseRepo, customerRepo)
	reportService := reportapp.NewReportService(reportRepo)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Customer: handler.NewCustomerHandler(customerService, importService, purchaseService),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Payment:  handler.NewPaymentHandler(paymentService, reportService),
		Report:   handler.NewReportHandler(reportService),
		Admin:    handler.NewAdminHandler(userService, customerService, reportService),
	}

	engine := router.New(router.Config{
		HTTP:       cfg.HTTP,
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
		Handlers:   handlers,
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err),
		)
		_ = client.Close()
		return auth.NewInMemoryTokenBlacklist()
	}

	log.Info("Using Redis token blacklist", zap.String("addr", cfg.Redis.Addr()))
	return auth.NewRedisTokenBlacklist(client)
}
