package routes

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/api/handlers"
	"EchoForge-Backend/internal/middleware"
	"EchoForge-Backend/internal/ratelimit"
	"EchoForge-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	UsageHandler       handlers.UsageHandler
	PaymentHandler     handlers.PaymentHandler
	PaygHandler        handlers.PaygHandler
	AdminHandler       handlers.AdminHandler
	AnalysisHandler    handlers.AnalysisHandler
	MarketplaceHandler handlers.MarketplaceHandler
	FeatureFlagHandler handlers.FeatureFlagHandler
	AssistantHandler   handlers.AssistantHandler
	BillingHandler     handlers.BillingHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
	RateLimiter        ratelimit.Limiter
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Usage()
	c.Payments()
	c.Analyses()
	c.Marketplace()
	c.Features()
	c.Assistant()
	c.Billing()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) limited() fiber.Handler {
	return c.Middleware.RateLimitMiddleware(c.RateLimiter)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.auth(), c.UserHandler.Me)
		user.Put("/me", c.auth(), c.UserHandler.UpdateMe)
	}
}

func (c *Config) Usage() {
	usage := c.App.Group("/api/v1/usage", c.auth())
	usage.Get("/limits", c.UsageHandler.GetUsageLimits)
}

func (c *Config) Payments() {
	payments := c.App.Group("/api/v1/crypto-payments", c.auth())
	payments.Post("", c.PaymentHandler.CreatePayment)

	payg := c.App.Group("/api/v1/payg", c.auth())
	{
		payg.Get("/balance", c.PaygHandler.GetBalance)
		payg.Post("/purchase", c.PaymentHandler.CreateTokenPurchase)
	}
}

func (c *Config) Analyses() {
	analyses := c.App.Group("/api/v1/analyses", c.auth())
	{
		analyses.Post("", c.limited(), c.AnalysisHandler.CreateAnalysis)
		analyses.Get("", c.AnalysisHandler.GetAnalyses)
		analyses.Get("/:id", c.AnalysisHandler.GetAnalysis)
	}
}

func (c *Config) Marketplace() {
	marketplace := c.App.Group("/api/v1/marketplace", c.auth())
	{
		marketplace.Post("/listings", c.MarketplaceHandler.CreateListing)
		marketplace.Get("/listings", c.MarketplaceHandler.GetListings)
		marketplace.Post("/orders", c.MarketplaceHandler.CreateOrder)
		marketplace.Get("/orders", c.MarketplaceHandler.GetOrders)
		marketplace.Get("/license-keys", c.MarketplaceHandler.GetLicenseKeys)
	}
}

func (c *Config) Features() {
	features := c.App.Group("/api/v1/feature-flags", c.auth())
	features.Get("", c.FeatureFlagHandler.GetFlags)
}

func (c *Config) Assistant() {
	assistant := c.App.Group("/api/v1/assistant", c.auth())
	assistant.Post("/chat", c.limited(), c.AssistantHandler.Chat)
}

func (c *Config) Billing() {
	billing := c.App.Group("/api/v1/billing", c.auth())
	billing.Post("/checkout", c.BillingHandler.CreateCheckout)
}

// Admin routes require an authenticated ADMIN or OWNER principal; the
// role gate has no bypass.
func (c *Config) Admin() {
	admin := c.App.Group(
		"/api/v1/admin",
		c.auth(),
		c.Middleware.RequireRoles(domain.RoleAdmin, domain.RoleOwner),
	)
	{
		admin.Get("/crypto-payments/confirmations", c.AdminHandler.GetConfirmations)
		admin.Post("/crypto-payments/confirmations", c.AdminHandler.DecidePayment)
		admin.Post("/users/bulk", c.AdminHandler.BulkUserOperation)
		admin.Get("/audit-logs", c.AdminHandler.GetAuditLogs)

		admin.Get("/feature-flags", c.FeatureFlagHandler.GetAllFlags)
		admin.Put("/feature-flags/:key", c.FeatureFlagHandler.UpsertFlag)

		admin.Get("/assistant/providers", c.AssistantHandler.GetProviders)
		admin.Post("/assistant/providers", c.AssistantHandler.SaveProvider)

		admin.Post("/analyses/:id/complete", c.AnalysisHandler.CompleteAnalysis)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.BillingHandler.Webhook)
}
