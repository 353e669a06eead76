package app

import (
	"fmt"

	"contactdesk_backend/internal/config"
	"contactdesk_backend/internal/email"
	"contactdesk_backend/internal/gateway"
	"contactdesk_backend/internal/handlers"
	"contactdesk_backend/internal/logger"
	"contactdesk_backend/internal/middleware"
	"contactdesk_backend/internal/repositories"
	"contactdesk_backend/internal/routes"
	"contactdesk_backend/internal/services"
	"contactdesk_backend/internal/storage"
	"contactdesk_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"contactdesk_backend/internal/models"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(
		&models.ContactEntry{},
		&models.PaymentLog{},
	); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	appHandlers := initializeHandlers(cfg, storageInstance)

	ginRouter := initializeGinRouter(cfg, gormDB)

	uploadDir := ""
	if local, ok := storageInstance.(*storage.LocalStorage); ok {
		uploadDir = local.BasePath()
	}
	routes.RegisterRoutes(ginRouter, appHandlers, uploadDir)

	return ginRouter
}

func initializeHandlers(cfg *config.Config, storageInstance storage.Storage) *handlers.AppHandlers {
	var mailer email.Provider
	if cfg.Email.Enabled {
		smtp, err := email.NewSMTPProvider(email.Config{
			SMTPHost:  cfg.Email.SMTPHost,
			SMTPPort:  cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
		mailer = smtp
	} else {
		logger.Warn("Email disabled, outbound mail goes to the log only")
		mailer = &LogMailProvider{}
	}

	gatewayClient := gateway.NewClient(gateway.Config{
		BaseURL:         cfg.Payment.BaseURL,
		EntityID:        cfg.Payment.EntityID,
		BearerToken:     cfg.Payment.BearerToken,
		Currency:        cfg.Payment.Currency,
		TestMode:        cfg.Payment.TestMode,
		SuccessPrefixes: cfg.Payment.SuccessPrefixes,
	})

	entryRepo := repositories.NewContactEntryRepository()
	paymentLogRepo := repositories.NewPaymentLogRepository()

	attachmentService := services.NewAttachmentService(storageInstance)
	contactService := services.NewContactService(entryRepo, attachmentService, mailer, cfg.Upload.AllowedImageTypes)
	checkoutService := services.NewCheckoutService(paymentLogRepo, gatewayClient, cfg.Payment.Currency)

	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		ContactHandler:  handlers.NewContactHandler(base, contactService, cfg.Upload.MaxSize),
		CheckoutHandler: handlers.NewCheckoutHandler(base, checkoutService),
	}
}

func initializeGinRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.DBMiddleware(gormDB),
	)

	return ginRouter
}
