package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blood-donation-backend/config"
	deliveryHttp "blood-donation-backend/internal/delivery/http"
	"blood-donation-backend/internal/delivery/http/handler"
	"blood-donation-backend/internal/delivery/http/middleware"
	"blood-donation-backend/internal/infrastructure/cache"
	"blood-donation-backend/internal/infrastructure/database"
	"blood-donation-backend/internal/infrastructure/metrics"
	"blood-donation-backend/internal/infrastructure/storage"
	"blood-donation-backend/internal/repository"
	"blood-donation-backend/internal/service"
	"blood-donation-backend/internal/usecase"
	"blood-donation-backend/pkg/jwt"
	"blood-donation-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB); err != nil {
			return nil, err
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	blobStore, err := storage.NewFileStore(cfg.Storage.Dir, cfg.Storage.PublicURL)
	if err != nil {
		return nil, err
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, log, db, redisClient, blobStore)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Env == "development" {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return logrus.StandardLogger()
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, blobStore storage.BlobStore) *http.Server {
	loc := cfg.App.Location()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	donationMetrics := metrics.New(nil)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	donorRepo := repository.NewDonorRepository()
	pmiCenterRepo := repository.NewPmiCenterRepository()
	scheduleRepo := repository.NewDonorScheduleRepository()
	donationRepo := repository.NewDonationRepository()
	physicalRepo := repository.NewPhysicalRepository()
	stockRepo := repository.NewBloodStockRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	sessionService := service.NewSessionService(log, redisClient, jwtService.GetAccessExpiry(), jwtService.GetRefreshExpiry())
	identityService := service.NewIdentityService(log, cfg.Google.TokenInfoURL, cfg.Google.ClientID)
	exportService := service.NewExportService()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, donorRepo, pmiCenterRepo, jwtService, sessionService, identityService, auditService, blobStore)
	profileUsecase := usecase.NewProfileUsecase(db, log, userRepo, donorRepo, pmiCenterRepo, auditService, blobStore.URL)
	scheduleUsecase := usecase.NewDonorScheduleUsecase(db, log, userRepo, scheduleRepo, donationRepo, auditService, blobStore.URL, loc)
	donationUsecase := usecase.NewDonationUsecase(db, log, userRepo, donorRepo, scheduleRepo, donationRepo, physicalRepo, stockRepo, auditService, donationMetrics, loc)
	reportUsecase := usecase.NewReportUsecase(db, log, userRepo, donorRepo, donationRepo, stockRepo, exportService, blobStore.URL, loc)
	stockUsecase := usecase.NewBloodStockUsecase(db, log, userRepo, stockRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator)
	scheduleHandler := handler.NewDonorScheduleHandler(scheduleUsecase, customValidator)
	donationHandler := handler.NewDonationHandler(donationUsecase, customValidator)
	reportHandler := handler.NewReportHandler(reportUsecase)
	stockHandler := handler.NewBloodStockHandler(stockUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionService)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		authHandler,
		profileHandler,
		scheduleHandler,
		donationHandler,
		reportHandler,
		stockHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		blobStore.Handler(),
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
