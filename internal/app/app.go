package app

import (
	"context"
	"fmt"
	"time"

	"notehub_backend/database"
	"notehub_backend/internal/config"
	"notehub_backend/internal/email"
	"notehub_backend/internal/handlers"
	"notehub_backend/internal/logger"
	"notehub_backend/internal/middleware"
	"notehub_backend/internal/repositories"
	"notehub_backend/internal/routes"
	"notehub_backend/internal/services"
	"notehub_backend/internal/validator"
	"notehub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectFromConfig()
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

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	tokenWorker := workers.NewTokenWorker(gormDB, services.NewTokenService(cfg, repositories.NewTokenRepository()), time.Hour)
	tokenWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the fully wired gin engine.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	return SetupRouterWithProvider(cfg, gormDB, selectEmailProvider(cfg))
}

// SetupRouterWithProvider is SetupRouter with an explicit email provider.
// Tests pass the mock so they can read the tokens that were mailed out.
func SetupRouterWithProvider(cfg *config.Config, gormDB *gorm.DB, provider email.Provider) *gin.Engine {
	container := initializeServices(cfg, provider)
	appHandlers := initializeHandlers(container)

	router := initializeGinRouter(cfg, gormDB)

	authMW := middleware.AuthMiddleware([]byte(cfg.JWT.Secret))
	verifiedMW := middleware.RequireVerified(repositories.NewUserRepository())
	routes.RegisterRoutes(router, appHandlers, authMW, verifiedMW)

	return router
}

// ServiceContainer groups the constructed services for handler wiring.
type ServiceContainer struct {
	TokenService    services.TokenService
	AuthService     services.AuthService
	UserService     services.UserService
	NoteService     services.NoteService
	CategoryService services.CategoryService
	TagService      services.TagService
	EmailProvider   email.Provider
}

func initializeServices(cfg *config.Config, emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	tokenRepo := repositories.NewTokenRepository()
	noteRepo := repositories.NewNoteRepository()
	categoryRepo := repositories.NewCategoryRepository()
	tagRepo := repositories.NewTagRepository()

	tokenService := services.NewTokenService(cfg, tokenRepo)
	authService := services.NewAuthService(userRepo, tokenService, emailProvider)
	userService := services.NewUserService(userRepo)
	noteService := services.NewNoteService(noteRepo, categoryRepo, tagRepo)
	categoryService := services.NewCategoryService(categoryRepo, noteRepo)
	tagService := services.NewTagService(tagRepo, noteRepo)

	return &ServiceContainer{
		TokenService:    tokenService,
		AuthService:     authService,
		UserService:     userService,
		NoteService:     noteService,
		CategoryService: categoryService,
		TagService:      tagService,
		EmailProvider:   emailProvider,
	}
}

// selectEmailProvider returns the SMTP provider when a host is configured,
// otherwise the in-memory mock so development works without a mail server.
func selectEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host not configured, using mock email provider")
		return email.NewMockProvider()
	}

	provider, err := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		ClientURL: cfg.Email.ClientURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}
	logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	return provider
}

func initializeHandlers(container *ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, container.AuthService, container.UserService),
		NoteHandler:     handlers.NewNoteHandler(baseHandler, container.NoteService),
		CategoryHandler: handlers.NewCategoryHandler(baseHandler, container.CategoryService),
		TagHandler:      handlers.NewTagHandler(baseHandler, container.TagService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	if cfg.Server.Env == "production" {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		router.Use(limiter.Middleware())
	}

	return router
}
