package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Sannith-Hack/NCC-Air-Wing/docs" // Import generated swagger docs
	appControllers "github.com/Sannith-Hack/NCC-Air-Wing/internal/app/controllers"
	appMigrations "github.com/Sannith-Hack/NCC-Air-Wing/internal/app/migrations"
	appRepos "github.com/Sannith-Hack/NCC-Air-Wing/internal/app/repositories"
	appRoutes "github.com/Sannith-Hack/NCC-Air-Wing/internal/app/routes"
	appServices "github.com/Sannith-Hack/NCC-Air-Wing/internal/app/services"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/config"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/db"
	appMiddleware "github.com/Sannith-Hack/NCC-Air-Wing/internal/middleware"
	pkgAuth "github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/auth"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/cache"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/email"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/filestorage"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/helpers"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/logger"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	ProfileService    *appServices.ProfileService
	AdminService      *appServices.AdminService
	ContentService    *appServices.ContentService
	ExportService     *appServices.ExportService
	AuthController    *appControllers.AuthController
	ContentController *appControllers.ContentController
	ProfileController *appControllers.ProfileController
	AdminController   *appControllers.AdminController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	EmailService      email.EmailService
	FileStorage       *filestorage.LocalStorage
	Cache             *cache.Cache
	RedisClient       *redis.Client
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(strings.ToLower(cfg.Logging.Level), strings.ToLower(cfg.Logging.Format))

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	dbPool, err := db.Connect(context.Background(), cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.Run(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), cfg, dbPool, lgr); err != nil {
		// Startup continues; the admin account can be created manually.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupRedis connects the cache client. An empty address disables caching.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		lgr.Info().Msg("Redis not configured, content cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, content cache disabled")
		_ = client.Close()
		return nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, RedisClient: redisClient}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage; baseURL must match the static file serving endpoint
	var err error
	fileStorageBaseURL := cfg.Server.BaseURL + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Cache = cache.New(redisClient, helpers.ParseDuration(cfg.Redis.CacheTTL, 5*time.Minute), lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.VerificationTokenRepository,
		deps.Repos.PasswordResetTokenRepository,
		deps.JWTService,
		deps.EmailService,
		cfg.Google.ClientID,
		lgr,
	)

	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.StudentRepository,
		deps.Repos.NccDetailRepository,
		deps.Repos.ExperienceRepository,
		cfg.Profile.RecordCap,
		lgr,
	)

	deps.ContentService = appServices.NewContentService(deps.Repos.ContentRepository, deps.Cache, lgr)

	deps.AdminService = appServices.NewAdminService(
		deps.Repos.AdminRepository,
		deps.Repos.StudentRepository,
		deps.Repos.NccDetailRepository,
		deps.Repos.ExperienceRepository,
		deps.Repos.ContentRepository,
		deps.FileStorage,
		deps.Cache,
		lgr,
	)

	deps.ExportService = appServices.NewExportService(
		deps.Repos.StudentRepository,
		deps.Repos.NccDetailRepository,
		deps.Repos.ExperienceRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ContentController = appControllers.NewContentController(deps.ContentService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, deps.ExportService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ContentController,
		deps.ProfileController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	return router
}
