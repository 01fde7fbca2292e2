// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/invoice-manager/backend/config"
	"github.com/invoice-manager/backend/internal/application/usecase/auth"
	"github.com/invoice-manager/backend/internal/application/usecase/client"
	"github.com/invoice-manager/backend/internal/application/usecase/invoice"
	"github.com/invoice-manager/backend/internal/application/usecase/report"
	"github.com/invoice-manager/backend/internal/infra/server/router"
	"github.com/invoice-manager/backend/internal/integration/adapters"
	"github.com/invoice-manager/backend/internal/integration/entrypoint/controller"
	"github.com/invoice-manager/backend/internal/integration/entrypoint/middleware"
	"github.com/invoice-manager/backend/internal/integration/persistence"
	"github.com/invoice-manager/backend/internal/integration/storage"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  redis.Cmdable
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// healthCheck reports the state of the relational store.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient redis.Cmdable,
	healthCheck func(ctx context.Context) error,
) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	invoiceRepo := persistence.NewInvoiceRepository(db)

	attachmentStorage, err := storage.NewFileSystemStorage(cfg.Storage.Root, cfg.Storage.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize attachment storage: %w", err)
	}

	// Adapters
	passwordService := adapters.NewPasswordService(adapters.DefaultBcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Client use cases
	listClientsUseCase := client.NewListClientsUseCase(clientRepo)
	getClientUseCase := client.NewGetClientUseCase(clientRepo)
	createClientUseCase := client.NewCreateClientUseCase(clientRepo)
	updateClientUseCase := client.NewUpdateClientUseCase(clientRepo)
	deleteClientUseCase := client.NewDeleteClientUseCase(clientRepo)

	// Invoice use cases
	listInvoicesUseCase := invoice.NewListInvoicesUseCase(invoiceRepo, attachmentStorage)
	getInvoiceUseCase := invoice.NewGetInvoiceUseCase(invoiceRepo, attachmentStorage)
	createInvoiceUseCase := invoice.NewCreateInvoiceUseCase(invoiceRepo, attachmentStorage)
	updateInvoiceUseCase := invoice.NewUpdateInvoiceUseCase(invoiceRepo, attachmentStorage)
	deleteInvoiceUseCase := invoice.NewDeleteInvoiceUseCase(invoiceRepo, attachmentStorage)
	clearAttachmentUseCase := invoice.NewClearAttachmentUseCase(invoiceRepo, attachmentStorage)
	yearlySummaryUseCase := report.NewYearlySummaryUseCase(invoiceRepo)

	// Controllers
	healthController := controller.NewHealthController(healthCheck)
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	clientController := controller.NewClientController(
		listClientsUseCase,
		getClientUseCase,
		createClientUseCase,
		updateClientUseCase,
		deleteClientUseCase,
	)
	invoiceController := controller.NewInvoiceController(
		listInvoicesUseCase,
		getInvoiceUseCase,
		createInvoiceUseCase,
		updateInvoiceUseCase,
		deleteInvoiceUseCase,
		clearAttachmentUseCase,
		yearlySummaryUseCase,
		cfg.Storage.MaxUploadSize,
	)

	// Higher limits for E2E/test environments keep suites from tripping the limiter
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiter(redisClient, "login", 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(redisClient, "login", middleware.DefaultMaxAttempts, middleware.DefaultWindowDuration)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		clientController,
		invoiceController,
		loginRateLimiter,
		authMiddleware,
		cfg.Storage.Root,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: r,
	}, nil
}

// NewRedisClient builds a Redis client from the configured URL. Explicit
// password and DB settings override the ones embedded in the URL.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return redis.NewClient(opts), nil
}
