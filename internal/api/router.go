package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/meridianapps/account-service/docs"
	"github.com/meridianapps/account-service/internal/api/handler"
	"github.com/meridianapps/account-service/internal/api/middleware"
	"github.com/meridianapps/account-service/internal/core/ports"
	"github.com/meridianapps/account-service/internal/core/service"
	mongodb "github.com/meridianapps/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/meridianapps/account-service/internal/infrastructure/db/redis"
	"github.com/meridianapps/account-service/internal/pkg/config"
	"github.com/meridianapps/account-service/internal/pkg/integrity"
	"github.com/meridianapps/account-service/internal/pkg/password"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb, cfg.Session.TTL)
	hasher := password.NewHasher(password.Params{
		Memory:      cfg.Argon2.MemoryKB,
		Time:        cfg.Argon2.Time,
		Parallelism: cfg.Argon2.Parallelism,
	})
	digests := integrity.NewHasher(cfg.IntegritySecret)
	accounts := service.NewAccountService(accountRepo, sessionStore, hasher, digests, service.SystemClock(), audit, log)

	cookies := middleware.CookiePolicy{
		Name:   cfg.Session.CookieName,
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Secure: cfg.CookieSecure(),
	}
	sessionMW := middleware.Session(accounts, sessionStore, cookies)
	adminMW := middleware.AdminOnly()

	authHandler := handler.NewAuthHandler(accounts, cookies)
	profileHandler := handler.NewProfileHandler(accounts)
	adminHandler := handler.NewAdminHandler(accounts)

	// --- API routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/register", authHandler.Register)
	apiGroup.POST("/login", authHandler.Login)
	apiGroup.POST("/logout", authHandler.Logout, sessionMW)
	apiGroup.GET("/me", profileHandler.Me, sessionMW)
	apiGroup.POST("/me/update", profileHandler.Update, sessionMW)
	apiGroup.POST("/admin/status", adminHandler.UpdateStatus, sessionMW, adminMW)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
