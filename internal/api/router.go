package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sizafi/marketplace-api/docs"
	"github.com/sizafi/marketplace-api/internal/api/handler"
	"github.com/sizafi/marketplace-api/internal/api/middleware"
	"github.com/sizafi/marketplace-api/internal/core/domain"
	"github.com/sizafi/marketplace-api/internal/core/ports"
	"github.com/sizafi/marketplace-api/internal/core/service"
	"github.com/sizafi/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/sizafi/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sizafi/marketplace-api/internal/infrastructure/db/redis"
	"github.com/sizafi/marketplace-api/internal/infrastructure/queue"
)

const sessionTTL = 24 * time.Hour

// NewRouter builds the Echo instance with all routes registered, plus the
// webhook dispatcher the caller must Start.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	store ports.DocumentStore,
	gateway ports.PaymentGateway,
	log zerolog.Logger,
) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sizafi"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	appRepo := mongodb.NewApplicationRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	dedup := redisdb.NewWebhookDedup(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, sessionTTL)
	workerService := service.NewWorkerService(userRepo)
	appService := service.NewApplicationService(appRepo, userRepo, store, cfg.S3.PresignTTL, log)
	paymentService := service.NewPaymentService(paymentRepo, userRepo, gateway, dedup, cfg.FrontendURL, log)

	dispatcher := queue.NewDispatcher(0, paymentService, log)

	secureCookie := cfg.Env == "production"
	authHandler := handler.NewAuthHandler(authService, sessionTTL, secureCookie)
	workerHandler := handler.NewWorkerHandler(workerService)
	appHandler := handler.NewApplicationHandler(appService)
	paymentHandler := handler.NewPaymentHandler(paymentService, dispatcher, cfg.Paystack.SecretKey)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/user/signup", authHandler.Signup)
	e.POST("/user/login", authHandler.Login)
	e.POST("/user/logout", authHandler.Logout)
	e.GET("/user/check", authHandler.Check, authRequired)

	// --- Worker directory ---
	e.GET("/workers", workerHandler.List, authRequired)
	e.GET("/workers/:id", workerHandler.Get, authRequired)

	// --- Applications ---
	app := e.Group("/application", authRequired)
	app.POST("/apply", appHandler.Apply)
	app.GET("/mine", appHandler.Mine)
	app.GET("", appHandler.ListAll, adminOnly)
	app.GET("/pending", appHandler.Pending, adminOnly)
	app.PUT("/:id/review", appHandler.Review, adminOnly)

	// --- Payments ---
	pay := e.Group("/payment")
	pay.POST("/initialize", paymentHandler.Initialize, authRequired)
	pay.GET("/verify/:reference", paymentHandler.Verify, authRequired)
	pay.GET("/history", paymentHandler.History, authRequired)
	pay.GET("/worker/earnings", paymentHandler.Earnings, authRequired)
	pay.POST("/webhook", paymentHandler.Webhook) // authenticated by signature, not session

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher
}
