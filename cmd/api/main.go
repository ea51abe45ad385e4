package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fund-order-platform/config"
	httpHandler "fund-order-platform/internal/adapter/http/handler"
	"fund-order-platform/internal/adapter/notify"
	"fund-order-platform/internal/adapter/provider"
	pgStorage "fund-order-platform/internal/adapter/storage/postgres"
	redisStorage "fund-order-platform/internal/adapter/storage/redis"
	"fund-order-platform/internal/core/ports"
	"fund-order-platform/internal/scheduler"
	"fund-order-platform/internal/service"
	"fund-order-platform/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Fund Order Platform")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	paymentRepo := pgStorage.NewPaymentRepo(pool)
	orderRepo := pgStorage.NewOrderRepo(pool)
	orderItemRepo := pgStorage.NewOrderItemRepo(pool)
	mfaRepo := pgStorage.NewMfaSessionRepo(pool)
	settlementRepo := pgStorage.NewSettlementRepo(pool)
	folioRepo := pgStorage.NewFolioRepo(pool)
	goalRepo := pgStorage.NewGoalRepo(pool)
	beneficiaryRepo := pgStorage.NewBeneficiaryRepo(pool)
	contactRepo := pgStorage.NewContactRepo(pool)
	bankVerifyRepo := pgStorage.NewBankVerificationRepo(pool)
	jobRepo := pgStorage.NewJobRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	eventCache := redisStorage.NewEventCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize outbound adapters
	providerClient := provider.NewClient(provider.Config{
		BaseURL:     cfg.Provider.BaseURL,
		APIKey:      cfg.Provider.APIKey,
		CallTimeout: cfg.Provider.CallTimeout,
	}, log)
	otpSender := notify.NewHTTPOtpSender(notify.Config{
		BaseURL:     cfg.Notify.BaseURL,
		APIKey:      cfg.Notify.APIKey,
		SendTimeout: cfg.Notify.SendTimeout,
	}, log)

	// Initialize core services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	otpSvc := service.NewOtpService()
	mfaSvc := service.NewMfaService(mfaRepo, contactRepo, otpSvc, otpSender, service.MfaConfig{
		OTPExpiry:   cfg.MFA.OTPExpiry,
		TokenExpiry: cfg.MFA.TokenExpiry,
		MaxAttempts: cfg.MFA.MaxAttempts,
		TokenSecret: cfg.MFA.TokenSecret,
	}, log)

	schedCfg := service.SchedulingConfig{
		PollInterval: cfg.Scheduler.PollInterval,
		VerifyDelay:  cfg.Scheduler.VerifyDelay,
		MaxPolls:     cfg.Scheduler.MaxPolls,
	}

	// Initialize the reconciliation scheduler
	reconciler := service.NewReconciler(orderRepo, orderItemRepo, settlementRepo, goalRepo, jobRepo, providerClient, transactor, log)
	fulfillment, err := scheduler.New(jobRepo, reconciler, cfg.Scheduler.MaxConcurrent, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}

	// Initialize business services
	holdingsSvc := service.NewHoldingsService(settlementRepo, folioRepo, providerClient, log)
	paymentSvc := service.NewPaymentService(
		paymentRepo, orderRepo, orderItemRepo, goalRepo, beneficiaryRepo,
		providerClient, fulfillment, transactor, cfg.Provider.CallbackURL, schedCfg, log,
	)
	sellSvc := service.NewSellService(
		mfaSvc, holdingsSvc, orderRepo, orderItemRepo, goalRepo, beneficiaryRepo,
		providerClient, fulfillment, transactor, schedCfg, log,
	)
	sipSvc := service.NewSipService(
		paymentRepo, orderRepo, orderItemRepo, goalRepo, beneficiaryRepo,
		providerClient, fulfillment, transactor, schedCfg, log,
	)
	verificationSvc := service.NewVerificationService(bankVerifyRepo, eventCache, log)

	// Restore durable reconciliation jobs and start the workers
	if err := fulfillment.Restore(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to restore reconciliation jobs")
	}
	fulfillment.Start()
	defer func() {
		if err := fulfillment.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown failed")
		}
	}()

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		PaymentSvc:      paymentSvc,
		SellSvc:         sellSvc,
		SipSvc:          sipSvc,
		MfaSvc:          mfaSvc,
		VerificationSvc: verificationSvc,
		TokenSvc:        tokenSvc,
		PaymentRepo:     paymentRepo,
		RateLimitStore:  rateLimitStore,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		DeepLinkBase:    cfg.Server.DeepLinkBase,
		Logger:          log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
