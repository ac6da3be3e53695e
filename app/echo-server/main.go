package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myStoreCloud/app/echo-server/router"
	"myStoreCloud/business/behavior"
	"myStoreCloud/business/category"
	"myStoreCloud/business/customer"
	"myStoreCloud/business/orders"
	"myStoreCloud/business/product"
	"myStoreCloud/business/recommendation"
	storeService "myStoreCloud/business/store"
	userService "myStoreCloud/business/user"
	"myStoreCloud/internal/middleware"
	"myStoreCloud/internal/repository/notification"
	psqlRepo "myStoreCloud/internal/repository/postgres"
	redisRepo "myStoreCloud/internal/repository/redis"
	"myStoreCloud/internal/rest"
	"myStoreCloud/pkg/config"
	"myStoreCloud/pkg/database"
	redisClient "myStoreCloud/pkg/database/redis"
	"myStoreCloud/pkg/logger"
	"myStoreCloud/pkg/metrics"
	"myStoreCloud/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// dbProvisioner creates tenant databases on the control-plane
// connection.
type dbProvisioner struct {
	db *gorm.DB
}

func (p dbProvisioner) CreateDatabase(ctx context.Context, databaseName string) error {
	return database.CreateTenantDatabase(ctx, p.db, databaseName)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyStoreCloud", "version", cfg.App.Version)

	metrics.Init()
	utils.InitJWT(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Control-plane database connected successfully")

	rdb, err := redisClient.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Control-plane repos
	userRepo := psqlRepo.NewUserRepository(db)
	storeRepo := psqlRepo.NewStoreRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(rdb)
	trendingCache := redisRepo.NewTrendingCache(rdb, 0)

	// Tenant registry resolves subdomains to per-store databases
	registry := database.NewTenantRegistry(cfg, storeRepo, nil)

	// Init services
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	strService := storeService.NewStoreService(storeRepo, dbProvisioner{db: db}, cfg.Database.TenantDBPrefix)

	behaviorService := behavior.NewService(registry, func(tdb *gorm.DB) behavior.BehaviorRepository {
		return psqlRepo.NewBehaviorRepository(tdb)
	})

	recoService := recommendation.NewService(registry, func(tdb *gorm.DB) recommendation.Repositories {
		return recommendation.Repositories{
			Behavior: psqlRepo.NewBehaviorRepository(tdb),
			Views:    psqlRepo.NewProductViewRepository(tdb),
			Catalog:  psqlRepo.NewCatalogRepository(tdb),
			Recs:     psqlRepo.NewRecommendationRepository(tdb),
			Prefs:    psqlRepo.NewPreferenceRepository(tdb),
		}
	}, trendingCache, recommendation.DefaultConfig())

	productService := product.NewProductService(registry, func(tdb *gorm.DB) product.ProductRepository {
		return psqlRepo.NewProductRepository(tdb)
	})

	categoryService := category.NewCategoryService(registry, func(tdb *gorm.DB) category.CategoryRepository {
		return psqlRepo.NewCategoryRepository(tdb)
	})

	customerService := customer.NewCustomerService(registry, func(tdb *gorm.DB) customer.CustomerRepository {
		return psqlRepo.NewCustomerRepository(tdb)
	})

	ordersService := orders.NewOrdersService(registry, func(tdb *gorm.DB) orders.Repositories {
		return orders.Repositories{
			Orders:   psqlRepo.NewOrdersRepository(tdb),
			Products: psqlRepo.NewProductRepository(tdb),
		}
	}, behaviorService)

	// Init handlers
	userHandler := rest.NewUserHandler(usrService)
	storeHandler := rest.NewStoreHandler(strService)
	recoHandler := rest.NewRecommendationHandler(recoService)
	behaviorHandler := rest.NewBehaviorHandler(behaviorService)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	customerHandler := rest.NewCustomerHandler(customerService)
	ordersHandler := rest.NewOrdersHandler(ordersService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.HeaderStore},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		tenants := registry.HealthCheck(c.Request().Context())
		unhealthy := map[string]string{}
		for dsn, err := range tenants {
			if err != nil {
				unhealthy[dsn] = err.Error()
			}
		}
		if len(unhealthy) > 0 {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status":    "degraded",
				"unhealthy": len(unhealthy),
			})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	// Route middleware
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)
	ownerOnly := middleware.OwnerOnly()
	tenant := middleware.TenantMiddleware(cfg.App.BaseDomain)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupStoreRoutes(api, storeHandler, authRequired, ownerOnly)
	router.SetupRecommendationRoutes(api, recoHandler, tenant, authRequired, ownerOnly)
	router.SetupBehaviorRoutes(api, behaviorHandler, tenant)
	router.SetupProductRoutes(api, productHandler, categoryHandler, tenant, authRequired, ownerOnly)
	router.SetupCategoryRoutes(api, categoryHandler, tenant, authRequired, ownerOnly)
	router.SetupOrdersRoutes(api, ordersHandler, tenant, authRequired, ownerOnly)
	router.SetupCustomerRoutes(api, customerHandler, ordersHandler, recoHandler, tenant)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := registry.CloseAll(); err != nil {
		logger.Error("Tenant handle shutdown error", "error", err)
	}

	if err := redisClient.CloseRedisClient(rdb); err != nil {
		logger.Error("Redis shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
