package config

import (
	"EchoForge-Backend/internal/api/handlers"
	"EchoForge-Backend/internal/api/routes"
	"EchoForge-Backend/internal/middleware"
	"EchoForge-Backend/internal/ratelimit"
	"EchoForge-Backend/internal/utils"
	"EchoForge-Backend/internal/utils/storage"
	"EchoForge-Backend/pkg/admin"
	"EchoForge-Backend/pkg/analysis"
	"EchoForge-Backend/pkg/assistant"
	"EchoForge-Backend/pkg/audit"
	"EchoForge-Backend/pkg/billing"
	"EchoForge-Backend/pkg/featureflag"
	"EchoForge-Backend/pkg/jwt"
	"EchoForge-Backend/pkg/marketplace"
	"EchoForge-Backend/pkg/payg"
	"EchoForge-Backend/pkg/payment"
	"EchoForge-Backend/pkg/plan"
	"EchoForge-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         512 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	rdb := redis.NewClient(&redis.Options{
		Addr: utils.GetConfig("REDIS_ADDR"),
	})
	apiLimiter := ratelimit.NewFixedWindowLimiter(rdb, "echoforge:api", 60, time.Minute)

	// Repository
	userRepository := user.NewUserRepository(db)
	planRepository := plan.NewPlanRepository(db)
	paymentRepository := payment.NewPaymentRepository(db)
	paygRepository := payg.NewPaygRepository(db)
	adminRepository := admin.NewAdminRepository(db)
	auditRepository := audit.NewAuditRepository(db)
	analysisRepository := analysis.NewAnalysisRepository(db)
	marketplaceRepository := marketplace.NewMarketplaceRepository(db)
	featureFlagRepository := featureflag.NewFeatureFlagRepository(db)
	assistantRepository := assistant.NewAssistantRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	auditService := audit.NewAuditService(auditRepository)
	userService := user.NewUserService(userRepository, jwtService)
	planService := plan.NewPlanService(planRepository)
	paymentService := payment.NewPaymentService(paymentRepository, auditService)
	paygService := payg.NewPaygService(paygRepository)
	adminService := admin.NewAdminService(adminRepository, auditService)
	analysisService := analysis.NewAnalysisService(analysisRepository, planService, s3)
	marketplaceService := marketplace.NewMarketplaceService(marketplaceRepository)
	featureFlagService := featureflag.NewFeatureFlagService(featureFlagRepository)
	assistantService := assistant.NewAssistantService(assistantRepository)
	billingService := billing.NewBillingService(userRepository, auditService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	usageHandler := handlers.NewUsageHandler(planService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, validator)
	paygHandler := handlers.NewPaygHandler(paygService)
	adminHandler := handlers.NewAdminHandler(paymentService, adminService, auditService, validator)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, validator)
	marketplaceHandler := handlers.NewMarketplaceHandler(marketplaceService, validator)
	featureFlagHandler := handlers.NewFeatureFlagHandler(featureFlagService, validator)
	assistantHandler := handlers.NewAssistantHandler(assistantService, validator)
	billingHandler := handlers.NewBillingHandler(billingService, validator)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		UsageHandler:       usageHandler,
		PaymentHandler:     paymentHandler,
		PaygHandler:        paygHandler,
		AdminHandler:       adminHandler,
		AnalysisHandler:    analysisHandler,
		MarketplaceHandler: marketplaceHandler,
		FeatureFlagHandler: featureFlagHandler,
		AssistantHandler:   assistantHandler,
		BillingHandler:     billingHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
		RateLimiter:        apiLimiter,
	}
	routesConfig.Setup()
	return app, nil
}
