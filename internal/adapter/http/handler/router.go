package handler

import (
	"fund-order-platform/internal/adapter/http/middleware"
	redisStore "fund-order-platform/internal/adapter/storage/redis"
	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	PaymentSvc      ports.PaymentService
	SellSvc         ports.SellService
	SipSvc          ports.SipService
	MfaSvc          ports.MfaService
	VerificationSvc ports.VerificationService
	TokenSvc        ports.TokenService
	PaymentRepo     ports.PaymentRepository
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers  []ports.HealthChecker
	DeepLinkBase    string
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep: verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Public provider callbacks ---
	webhookHandler := NewWebhookHandler(deps.VerificationSvc, deps.PaymentSvc)
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/bank-verification", rl("webhooks"), webhookHandler.BankVerification)
		webhooks.POST("/payments", rl("webhooks"), webhookHandler.PaymentCallback)
	}

	// --- Browser return legs ---
	redirectHandler := NewRedirectHandler(deps.PaymentRepo, deps.SipSvc, deps.DeepLinkBase, deps.Logger)
	redirects := r.Group("/redirect")
	{
		redirects.GET("/payments/:id", redirectHandler.PaymentReturn)
		redirects.GET("/mandates/:id", redirectHandler.MandateReturn)
	}

	// --- JWT-authenticated investor API ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	v1 := r.Group("/api/v1", jwtAuth)

	paymentHandler := NewPaymentHandler(deps.PaymentSvc)
	payments := v1.Group("/payments")
	{
		payments.POST("", rl("payments"), paymentHandler.Create)
		payments.POST("/:id/verify", rl("payments"), paymentHandler.Verify)
		payments.POST("/:id/initiate", rl("payments"), paymentHandler.Initiate)
	}

	mfaHandler := NewMfaHandler(deps.MfaSvc)
	mfa := v1.Group("/mfa")
	{
		mfa.POST("/sessions", rl("mfa_start"), mfaHandler.StartSession)
		mfa.POST("/sessions/:id/verify", rl("mfa_verify"), mfaHandler.VerifySession)
	}

	sellHandler := NewSellHandler(deps.SellSvc)
	mfaGuard := middleware.MfaGuard(deps.MfaSvc, domain.ActionSellOrder)
	orders := v1.Group("/orders")
	{
		orders.POST("/sell", rl("orders_sell"), mfaGuard, sellHandler.PlaceOrder)
	}

	return r
}
