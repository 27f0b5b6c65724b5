package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/horizonbank/dashboard-api/internal/api/handler"
	"github.com/horizonbank/dashboard-api/internal/api/middleware"
	"github.com/horizonbank/dashboard-api/internal/core/service"
	"github.com/horizonbank/dashboard-api/internal/infrastructure/aggregator"
	"github.com/horizonbank/dashboard-api/internal/infrastructure/config"
	mongodb "github.com/horizonbank/dashboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/horizonbank/dashboard-api/internal/infrastructure/db/redis"
	"github.com/horizonbank/dashboard-api/internal/infrastructure/identity"
	"github.com/horizonbank/dashboard-api/internal/infrastructure/payments"
	"github.com/horizonbank/dashboard-api/internal/pkg/shareable"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("horizon"))

	// --- Platform clients ---
	identityClient := identity.NewClient(identity.Config{
		BaseURL:   cfg.Identity.BaseURL,
		ProjectID: cfg.Identity.ProjectID,
		APIKey:    cfg.Identity.APIKey,
		Timeout:   cfg.Identity.Timeout,
	})
	aggregatorClient := aggregator.NewClient(aggregator.Config{
		BaseURL:  cfg.Aggregator.BaseURL,
		ClientID: cfg.Aggregator.ClientID,
		Secret:   cfg.Aggregator.Secret,
		Timeout:  cfg.Aggregator.Timeout,
	})
	paymentsClient := payments.NewClient(payments.Config{
		BaseURL: cfg.Payments.BaseURL,
		Key:     cfg.Payments.Key,
		Secret:  cfg.Payments.Secret,
		Timeout: cfg.Payments.Timeout,
	})

	// --- Storage + helpers ---
	userRepo := mongodb.NewUserRepository(db)
	bankRepo := mongodb.NewBankRepository(db)
	linkGuard := redisdb.NewLinkGuard(rdb)

	key, err := cfg.ShareableKeyBytes()
	if err != nil {
		return nil, err
	}
	encrypter, err := shareable.NewEncrypter(key)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	// --- Services ---
	provisioningService := service.NewProvisioningService(paymentsClient, identityClient, userRepo, log)
	authService := service.NewAuthService(identityClient, userRepo, log)
	bankService := service.NewBankService(aggregatorClient, paymentsClient, bankRepo, linkGuard, encrypter, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(provisioningService, authService, cfg.SessionCookie)
	bankHandler := handler.NewBankHandler(bankService)
	sessionRequired := middleware.Session(cfg.SessionCookie, authService)

	// --- Auth routes ---
	e.POST("/v1/auth/sign-up", authHandler.SignUp)
	e.POST("/v1/auth/sign-in", authHandler.SignIn)
	e.POST("/v1/auth/logout", authHandler.Logout)
	e.GET("/v1/me", authHandler.Me, sessionRequired)

	// --- Bank link routes ---
	e.POST("/v1/link/token", bankHandler.CreateLinkToken, sessionRequired)
	e.POST("/v1/link/exchange", bankHandler.Exchange, sessionRequired)
	e.GET("/v1/banks", bankHandler.List, sessionRequired)
	e.GET("/v1/banks/:id", bankHandler.Get, sessionRequired)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e, nil
}
