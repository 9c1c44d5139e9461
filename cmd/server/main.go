package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopdesk/backend/internal/application/catalog"
	customerapp "github.com/shopdesk/backend/internal/application/customer"
	identityapp "github.com/shopdesk/backend/internal/application/identity"
	orderapp "github.com/shopdesk/backend/internal/application/order"
	paymentapp "github.com/shopdesk/backend/internal/application/payment"
	reportapp "github.com/shopdesk/backend/internal/application/report"
	reviewapp "github.com/shopdesk/backend/internal/application/review"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/infrastructure/cache"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"github.com/shopdesk/backend/internal/infrastructure/event"
	"github.com/shopdesk/backend/internal/infrastructure/export"
	"github.com/shopdesk/backend/internal/infrastructure/logger"
	"github.com/shopdesk/backend/internal/infrastructure/persistence"
	"github.com/shopdesk/backend/internal/infrastructure/storage"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"github.com/shopdesk/backend/internal/interfaces/http/handler"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
	"github.com/shopdesk/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/shopdesk/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			ShopDesk API
//	@version		1.0
//	@description	Storefront and back office API: catalog, carts, orders, payments and the staff dashboard.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, log, err := setupObservability(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	log.Info("Starting ShopDesk",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.Driver == config.DriverSQLite {
		// SQLite has no SQL migrations; the schema comes from the models
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate SQLite schema", zap.Error(err))
		}
	}
	obs.instrumentDatabase(ctx, cfg, db, log)
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Redis backs the dashboard cache and the token revocation list when enabled
	backend := cache.NewBackend(ctx, cfg.Redis, log)
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("Error closing cache", zap.Error(err))
		}
	}()
	var revocations auth.RevocationList = auth.NewMemoryRevocationList()
	if backend.Client != nil {
		revocations = auth.NewRedisRevocationList(backend.Client)
	}

	// Repositories
	txManager := persistence.NewGormTxManager(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	staffRepo := persistence.NewGormStaffUserRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)

	// Event bus
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)
	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	productService.SetEventPublisher(eventBus)
	customerService := customerapp.NewService(customerRepo, log)
	cartService := orderapp.NewCartService(txManager, customerRepo, productRepo, orderRepo, paymentRepo, log)
	cartService.SetEventPublisher(eventBus)
	orderService := orderapp.NewOrderService(txManager, orderRepo, customerRepo, productRepo, log)
	orderService.SetEventPublisher(eventBus)
	paymentService := paymentapp.NewService(txManager, paymentRepo, orderRepo, log)
	paymentService.SetEventPublisher(eventBus)
	reviewService := reviewapp.NewService(reviewRepo, productRepo, log)

	dashboardService := reportapp.NewDashboardService(dashboardRepo, reportapp.DashboardConfig{
		CacheTTL:          cfg.Dashboard.CacheTTL,
		LowStockThreshold: cfg.Dashboard.LowStockThreshold,
	}, log)
	dashboardService.SetCache(backend.Dashboard)

	exportService := reportapp.NewExportService(orderRepo, paymentRepo, map[reportapp.Format]reportapp.TableEncoder{
		reportapp.FormatCSV:  export.NewCSVEncoder(),
		reportapp.FormatXLSX: export.NewXLSXEncoder(),
	}, log)
	if cfg.Storage.Enabled {
		archive, err := storage.NewS3ArchiveStorage(ctx, cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize export archive", zap.Error(err))
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			log.Warn("Export archive bucket unavailable", zap.String("bucket", archive.Bucket()), zap.Error(err))
		}
		exportService.SetArchive(archive, cfg.Storage.Prefix)
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(staffRepo, customerRepo, customerService, jwtService, revocations,
		identityapp.AuthServiceConfig{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			LockDuration:     cfg.Auth.LockDuration,
		}, log)

	if obs.meter.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:  obs.meter.Meter("shopdesk.business"),
			Logger: log,
			StockProvider: telemetry.StockProviderFunc(func(ctx context.Context) (int64, error) {
				return dashboardRepo.CountLowStock(ctx, cfg.Dashboard.LowStockThreshold)
			}),
		})
		if err != nil {
			log.Warn("Business metrics disabled", zap.Error(err))
		} else {
			cartService.SetMetrics(businessMetrics)
			orderService.SetMetrics(businessMetrics)
			paymentService.SetMetrics(businessMetrics)
			businessMetrics.StartPeriodicCollection(ctx, time.Minute)
			defer businessMetrics.Stop()
		}
	}

	// Event subscribers
	feedHandler := handler.NewDashboardFeedHandler(eventSerializer,
		handler.WithFeedLogger(log),
		handler.WithFeedAllowedOrigins(cfg.HTTP.CORSAllowOrigins),
		handler.WithFeedHeartbeat(cfg.Dashboard.FeedHeartbeat),
	)
	eventBus.Subscribe(feedHandler, feedHandler.EventTypes()...)
	invalidation := reportapp.NewCacheInvalidationHandler(dashboardService, log)
	eventBus.Subscribe(invalidation, invalidation.EventTypes()...)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	if err := feedHandler.Start(); err != nil {
		log.Fatal("Failed to start dashboard feed", zap.Error(err))
	}

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: request IDs first so every log line and span carries one
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSFromConfig(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(obs.meter, log))
	engine.Use(middleware.Profiling(middleware.ProfilingConfig{
		Enabled:          obs.profiler.IsEnabled(),
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}))

	healthHandler := handler.NewHealthHandler(version)
	healthHandler.AddCheck("database", func(context.Context) error { return db.Ping() })
	if backend.Client != nil {
		healthHandler.AddCheck("redis", func(ctx context.Context) error { return backend.Client.Ping(ctx).Err() })
	}
	engine.GET("/health", healthHandler.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	guards := router.Guards{
		Authenticate: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:  jwtService,
			Revocations: revocations,
			Logger:      log,
		}),
		AuthenticateFeed: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:      jwtService,
			Revocations:     revocations,
			AllowQueryToken: true,
			Logger:          log,
		}),
		RequireCustomer: middleware.RequireCustomer(),
		RequireStaff:    middleware.RequireStaff(),
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		guards.AuthLimit = middleware.RateLimit(limiter)
		log.Info("Rate limiting enabled on credential endpoints",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.ShopRoutes(router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Catalog:  handler.NewCatalogHandler(categoryService, productService),
		Customer: handler.NewCustomerHandler(customerService),
		Cart:     handler.NewCartHandler(cartService),
		Order:    handler.NewOrderHandler(orderService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Review:   handler.NewReviewHandler(reviewService),
		Report:   handler.NewReportHandler(dashboardService, exportService),
		Feed:     feedHandler,
	}, guards)...)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serveErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	// WebSocket connections are hijacked and not tracked by Shutdown
	feedHandler.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := obs.shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down telemetry", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
