// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/invoice-manager/backend/internal/integration/entrypoint/controller"
	"github.com/invoice-manager/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	authController    *controller.AuthController
	clientController  *controller.ClientController
	invoiceController *controller.InvoiceController
	loginRateLimiter  *middleware.RateLimiter
	authMiddleware    *middleware.AuthMiddleware
	uploadsDir        string
}

// NewRouter creates a new router instance with all dependencies.
// uploadsDir, when set, is served read-only under /uploads.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	clientController *controller.ClientController,
	invoiceController *controller.InvoiceController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	uploadsDir string,
) *Router {
	return &Router{
		healthController:  healthController,
		authController:    authController,
		clientController:  clientController,
		invoiceController: invoiceController,
		loginRateLimiter:  loginRateLimiter,
		authMiddleware:    authMiddleware,
		uploadsDir:        uploadsDir,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.engine.GET("/health", r.healthController.Check)
	if r.uploadsDir != "" {
		r.engine.Static("/uploads", r.uploadsDir)
	}
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.authController != nil {
		auth := v1.Group("/auth")
		auth.POST("/register", r.authController.Register)
		if r.loginRateLimiter != nil {
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		} else {
			auth.POST("/login", r.authController.Login)
		}
	}

	if r.authMiddleware == nil {
		return
	}

	if r.clientController != nil {
		clients := v1.Group("/clients")
		clients.Use(r.authMiddleware.Authenticate())
		{
			clients.GET("", r.clientController.List)
			clients.POST("", r.clientController.Create)
			clients.GET("/:id", r.clientController.Get)
			clients.PUT("/:id", r.clientController.Update)
			clients.DELETE("/:id", r.clientController.Delete)
		}
	}

	if r.invoiceController != nil {
		invoices := v1.Group("/invoices")
		invoices.Use(r.authMiddleware.Authenticate())
		{
			invoices.GET("", r.invoiceController.List)
			invoices.POST("", r.invoiceController.Create)
			invoices.GET("/summary", r.invoiceController.Summary)
			invoices.GET("/:id", r.invoiceController.Get)
			invoices.PUT("/:id", r.invoiceController.Update)
			invoices.DELETE("/:id", r.invoiceController.Delete)
			invoices.DELETE("/:id/attachment", r.invoiceController.ClearAttachment)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
