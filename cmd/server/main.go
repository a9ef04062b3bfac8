package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/bizpulse/backend/internal/application/billing"
	catalogapp "github.com/bizpulse/backend/internal/application/catalog"
	inventoryapp "github.com/bizpulse/backend/internal/application/inventory"
	invoiceapp "github.com/bizpulse/backend/internal/application/invoice"
	reportapp "github.com/bizpulse/backend/internal/application/report"
	"github.com/bizpulse/backend/internal/infrastructure/cache"
	"github.com/bizpulse/backend/internal/infrastructure/config"
	"github.com/bizpulse/backend/internal/infrastructure/logger"
	"github.com/bizpulse/backend/internal/infrastructure/persistence"
	"github.com/bizpulse/backend/internal/interfaces/http/handler"
	"github.com/bizpulse/backend/internal/interfaces/http/middleware"
	"github.com/bizpulse/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting BizPulse backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	// Database, with GORM logs bridged to zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Report cache: Redis when reachable, in-memory otherwise
	cacheFactory := cache.NewReportCacheFactory(cfg.Redis, cache.WithLogger(log))
	reportCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create report cache", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	invoiceQueryRepo := persistence.NewGormInvoiceQueryRepository(db.DB)
	salesReportRepo := persistence.NewGormSalesReportRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	billingService := billingapp.NewService(txScope, log)
	productService := catalogapp.NewProductService(productRepo, log)
	invoiceService := invoiceapp.NewQueryService(invoiceQueryRepo, log)
	inventoryService := inventoryapp.NewStatusService(productRepo, log)
	reportService := reportapp.NewSalesReportService(salesReportRepo, reportCache, cfg.Report.CacheTTL, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	middleware.SetupValidator()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// Handlers
	billingHandler := handler.NewBillingHandler(billingService)
	productHandler := handler.NewProductHandler(productService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler(db)

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	billingRoutes := router.NewDomainGroup("billing", "/bills")
	billingRoutes.POST("", billingHandler.Create)
	billingRoutes.GET("/:id", billingHandler.GetByID)
	billingRoutes.DELETE("/:id", billingHandler.Delete)

	productRoutes := router.NewDomainGroup("catalog", "/products")
	productRoutes.POST("", productHandler.Create)
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/:id", productHandler.GetByID)
	productRoutes.PUT("/:id", productHandler.Update)
	productRoutes.DELETE("/:id", productHandler.Deactivate)

	invoiceRoutes := router.NewDomainGroup("invoice", "/invoices")
	invoiceRoutes.GET("", invoiceHandler.List)

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.GET("/status", inventoryHandler.Status)

	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/sales/summary", reportHandler.Summary)
	reportRoutes.GET("/sales/by-product", reportHandler.ByProduct)
	reportRoutes.GET("/sales/by-category", reportHandler.ByCategory)

	systemRoutes := router.NewDomainGroup("system", "")
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(billingRoutes).
		Register(productRoutes).
		Register(invoiceRoutes).
		Register(inventoryRoutes).
		Register(reportRoutes).
		Register(systemRoutes)
	r.Setup()

	// Root-level health check for load balancers
	engine.GET("/health", systemHandler.Health)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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
