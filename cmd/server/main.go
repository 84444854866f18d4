package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/restopos/backend/api"
	catalogapp "github.com/restopos/backend/internal/application/catalog"
	cashierapp "github.com/restopos/backend/internal/application/cashier"
	financeapp "github.com/restopos/backend/internal/application/finance"
	floorapp "github.com/restopos/backend/internal/application/floor"
	identityapp "github.com/restopos/backend/internal/application/identity"
	inventoryapp "github.com/restopos/backend/internal/application/inventory"
	kitchenapp "github.com/restopos/backend/internal/application/kitchen"
	payrollapp "github.com/restopos/backend/internal/application/payroll"
	reportapp "github.com/restopos/backend/internal/application/report"
	salesapp "github.com/restopos/backend/internal/application/sales"
	settingsapp "github.com/restopos/backend/internal/application/settings"
	"github.com/restopos/backend/internal/domain/settings"
	"github.com/restopos/backend/internal/infrastructure/auth"
	"github.com/restopos/backend/internal/infrastructure/cache"
	"github.com/restopos/backend/internal/infrastructure/config"
	"github.com/restopos/backend/internal/infrastructure/event"
	"github.com/restopos/backend/internal/infrastructure/invoicing"
	"github.com/restopos/backend/internal/infrastructure/logger"
	"github.com/restopos/backend/internal/infrastructure/persistence"
	"github.com/restopos/backend/internal/infrastructure/storage"
	"github.com/restopos/backend/internal/infrastructure/telemetry"
	"github.com/restopos/backend/internal/interfaces/http/dto"
	"github.com/restopos/backend/internal/interfaces/http/handler"
	"github.com/restopos/backend/internal/interfaces/http/middleware"
	"github.com/restopos/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const version = "1.0.0"

// loginRateLimit is the number of login attempts one client IP may make per minute
const loginRateLimit = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting RestoPOS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()
	meter := meterProvider.Meter(telemetry.TracerName)

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.NewDBTracer(cfg.Telemetry.DBSlowQueryThresh, log).Register(db.DB); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	if sqlDB, err := db.SQL(); err == nil {
		if reg, err := telemetry.RegisterPoolMetrics(meter, sqlDB); err != nil {
			log.Warn("Failed to register pool metrics", zap.Error(err))
		} else {
			defer func() {
				_ = reg.Unregister()
			}()
		}
	}

	// Redis backs token revocation and rate limiting; without it both stay in process.
	var (
		redisClient *redis.Client
		revocations auth.RevocationStore = auth.NewMemoryRevocationStore()
		counter     cache.WindowCounter  = cache.NewMemoryWindowCounter()
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
		revocations = auth.NewRedisRevocationStore(redisClient)
		counter = cache.NewRedisWindowCounter(redisClient, "restopos:ratelimit:")
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		log.Warn("Redis disabled, revocations and rate limits are kept in memory")
	}

	var images catalogapp.ImageStorage = storage.DisabledImageStorage{}
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ImageStorage(cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		images = s3Storage
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	zoneRepo := persistence.NewGormZoneRepository(db.DB)
	tableRepo := persistence.NewGormTableRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	kitchenRepo := persistence.NewGormKitchenRepository(db.DB)
	itemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	periodRepo := persistence.NewGormPeriodRepository(db.DB)
	withdrawalRepo := persistence.NewGormWithdrawalRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	entryRepo := persistence.NewGormPayrollEntryRepository(db.DB)
	investmentRepo := persistence.NewGormInvestmentRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, revocations, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)
	userService := identityapp.NewUserService(userRepo, revocations, cfg.JWT.AccessTokenExpiration, log)
	settingsService := settingsapp.NewService(settingRepo, settings.Defaults{
		TaxRate:           decimal.NewFromFloat(cfg.Business.DefaultTaxRate),
		BusinessName:      cfg.Business.Name,
		Currency:          cfg.Business.Currency,
		EstablishmentCode: cfg.Business.EstablishmentCode,
		EmissionPoint:     cfg.Business.EmissionPoint,
	}, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, settingsService, images, log)
	floorService := floorapp.NewFloorService(zoneRepo, tableRepo)
	inventoryService := inventoryapp.NewInventoryService(itemRepo, purchaseRepo, recipeRepo, productRepo, txScope.Inventory(), log)
	saleService := salesapp.NewSaleService(saleRepo, invoiceRepo, tableRepo, settingsService, txScope.Sales(), log)
	saleService.SetInvoiceAuthorizer(invoicing.NewOfflineAuthorizer(log))
	kitchenService := kitchenapp.NewKitchenService(kitchenRepo, log)
	periodService := cashierapp.NewPeriodService(periodRepo, withdrawalRepo, txScope.Cashier(), log)
	payrollService := payrollapp.NewPayrollService(employeeRepo, entryRepo, log)
	investmentService := financeapp.NewInvestmentService(investmentRepo, log)
	reportService := reportapp.NewReportService(reportRepo, periodRepo, withdrawalRepo, log)

	// Event bus: kitchen display stream, sales metrics and the optional Kafka forwarder
	eventBus := event.NewInMemoryEventBus(log)

	kitchenStream := handler.NewKitchenStreamHandler(
		handler.WithStreamLogger(log),
		handler.WithStreamBuffer(cfg.Kitchen.StreamBuffer),
		handler.WithStreamHeartbeat(cfg.Kitchen.HeartbeatInterval),
	)
	if err := kitchenStream.Start(); err != nil {
		log.Fatal("Failed to start kitchen stream", zap.Error(err))
	}
	eventBus.Subscribe(kitchenStream)

	salesMetrics, err := telemetry.NewSalesMetrics(meter)
	if err != nil {
		log.Warn("Failed to create sales metrics", zap.Error(err))
	} else {
		eventBus.Subscribe(salesMetrics)
	}

	if cfg.Event.KafkaEnabled {
		forwarder := event.NewKafkaForwarder(cfg.Event, log)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing kafka forwarder", zap.Error(err))
			}
		}()
		eventBus.Subscribe(forwarder)
		log.Info("Kafka forwarding enabled",
			zap.Strings("brokers", cfg.Event.KafkaBrokers),
			zap.String("topic", cfg.Event.KafkaTopic),
		)
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	saleService.SetEventPublisher(eventBus)
	kitchenService.SetEventPublisher(eventBus)
	periodService.SetEventPublisher(eventBus)

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(meter))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Counter: counter,
			Limit:   cfg.HTTP.RateLimitRequests,
			Window:  cfg.HTTP.RateLimitWindow,
			Logger:  log,
		}))
	}

	checks := map[string]handler.HealthCheck{
		"database": db.Ping,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	router.NewAPI(engine, router.Handlers{
		Health:        handler.NewHealthHandler(version, checks),
		Auth:          handler.NewAuthHandler(authService),
		User:          handler.NewUserHandler(userService),
		Settings:      handler.NewSettingsHandler(settingsService),
		Category:      handler.NewCategoryHandler(categoryService),
		Product:       handler.NewProductHandler(productService, inventoryService),
		Floor:         handler.NewFloorHandler(floorService),
		Sale:          handler.NewSaleHandler(saleService),
		Kitchen:       handler.NewKitchenHandler(kitchenService),
		KitchenStream: kitchenStream,
		Inventory:     handler.NewInventoryHandler(inventoryService),
		Period:        handler.NewPeriodHandler(periodService),
		Payroll:       handler.NewPayrollHandler(payrollService),
		Investment:    handler.NewInvestmentHandler(investmentService),
		Report:        handler.NewReportHandler(reportService),
	}, router.APIConfig{
		Auth: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:  jwtService,
			Revocations: revocations,
			Logger:      log,
		}),
		LoginLimit: middleware.RateLimit(middleware.RateLimitConfig{
			Counter: counter,
			Limit:   loginRateLimit,
			Window:  time.Minute,
			KeyFunc: middleware.LoginKey,
			Logger:  log,
		}),
	})

	swaggerGuard := middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled:    cfg.Swagger.Enabled,
		AllowedIPs: cfg.Swagger.AllowedIPs,
	})
	engine.GET("/docs/openapi.yaml", swaggerGuard, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", api.OpenAPI)
	})
	engine.GET("/swagger/*any", swaggerGuard, ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/docs/openapi.yaml"),
	))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRouteNotFound, "Route not found", middleware.GetRequestID(c)))
	})

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Kitchen streams never finish on their own; close them before draining.
	kitchenStream.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
