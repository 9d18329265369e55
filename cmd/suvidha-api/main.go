package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/shelkesanchit/Suvidha-sub000/api/swagger"
	"github.com/shelkesanchit/Suvidha-sub000/internal/handler"
	"github.com/shelkesanchit/Suvidha-sub000/internal/middleware"
	"github.com/shelkesanchit/Suvidha-sub000/internal/repository"
	"github.com/shelkesanchit/Suvidha-sub000/internal/service"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/cache"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/config"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/database"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/logger"
	corsmiddleware "github.com/shelkesanchit/Suvidha-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/shelkesanchit/Suvidha-sub000/pkg/middleware/requestid"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/storage"
)

// @title Suvidha Municipal Services API
// @version 1.0.0
// @description Self-service kiosk and admin back office for the electricity, gas and water departments
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	documentStore, err := storage.NewLocalStorage(cfg.Documents.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init document storage", "error", err)
	}
	receiptStore, err := storage.NewLocalStorage(cfg.Receipts.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init receipt storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Documents.SignedURLSecret, cfg.Documents.SignedURLTTL)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	tariffRepo := repository.NewTariffRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	numberRepo := repository.NewNumberRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})

	notificationSvc := service.NewNotificationService(notificationRepo, service.NewLogSender(logr), logr, service.NotificationServiceConfig{
		Enabled:    cfg.Notifications.Enabled,
		Workers:    cfg.Notifications.Workers,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
	})
	notificationSvc.Start(context.Background())
	defer notificationSvc.Stop()

	documentSvc := service.NewDocumentService(documentRepo, documentStore, receiptStore, signer, logr, service.DocumentServiceConfig{
		MaxFileSizeBytes: cfg.Documents.MaxFileSizeBytes,
		AllowedMIMEs:     cfg.Documents.AllowedMIMEs,
	})

	dashboardSvc := service.NewDashboardService(applicationRepo, complaintRepo, billingRepo, cacheRepo, metricsSvc, logr, service.DashboardServiceConfig{
		Enabled:  cfg.Dashboard.Enabled,
		CacheTTL: cfg.Dashboard.CacheTTL,
	})

	applicationSvc := service.NewApplicationService(applicationRepo, numberRepo, documentSvc, notificationSvc, userRepo, dashboardSvc, validate, logr)
	complaintSvc := service.NewComplaintService(complaintRepo, numberRepo, documentSvc, notificationSvc, userRepo, dashboardSvc, validate, logr)
	billingSvc := service.NewBillingService(billingRepo, numberRepo, receiptStore, signer, notificationSvc, userRepo, dashboardSvc, validate, logr, service.BillingConfig{
		RechargeRebateRate: cfg.Billing.RechargeRebateRate,
		PricePerUnit:       cfg.Billing.PricePerUnit,
	})
	tariffSvc := service.NewTariffService(tariffRepo, userRepo, validate, logr)
	settingSvc := service.NewSettingService(settingRepo, userRepo, validate, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	handler.RegisterRoutes(api, handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Applications: handler.NewApplicationHandler(applicationSvc, metricsSvc),
		Complaints:   handler.NewComplaintHandler(complaintSvc, metricsSvc),
		Billing:      handler.NewBillingHandler(billingSvc, metricsSvc),
		Tariffs:      handler.NewTariffHandler(tariffSvc),
		Settings:     handler.NewSettingHandler(settingSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc, userRepo),
		Documents:    handler.NewDocumentHandler(documentSvc, logr),
	}, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
