package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	appControllers "github.com/wirahusada/portal-backend/internal/app/controllers"
	appMigrations "github.com/wirahusada/portal-backend/internal/app/migrations"
	appRepos "github.com/wirahusada/portal-backend/internal/app/repositories"
	appRoutes "github.com/wirahusada/portal-backend/internal/app/routes"
	appServices "github.com/wirahusada/portal-backend/internal/app/services"
	"github.com/wirahusada/portal-backend/internal/config"
	"github.com/wirahusada/portal-backend/internal/db"
	appMiddleware "github.com/wirahusada/portal-backend/internal/middleware"
	pkgAuth "github.com/wirahusada/portal-backend/internal/pkg/auth"
	"github.com/wirahusada/portal-backend/internal/pkg/logger"
	"github.com/wirahusada/portal-backend/internal/pkg/validation"
	"github.com/wirahusada/portal-backend/internal/seed"
)

const (
	serviceName          = "wirahusada-portal"
	metricsNamespace     = "portal"
	rateLimitCleanupTick = time.Minute
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appControllers.Controllers
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	RateLimiter    *appMiddleware.RateLimiter
	Metrics        *appMiddleware.Metrics
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the config file and the environment,
// then configures the global logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to read .env file")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  prettyLog,
		Service: serviceName,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")

	if cfg.UsesDefaultSecret() {
		lgr.Warn().Msg("JWT_SECRET is not set; using the development secret")
	}
	return cfg, lgr, nil
}

// SetupDatabases opens the identity, academic and finance pools, then applies
// the academic schema migration and the identity seed.
func SetupDatabases(cfg *config.Config, lgr zerolog.Logger) (*db.Databases, error) {
	lgr.Info().Msg("Establishing database connections...")
	dbs, err := db.Connect(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to databases")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Migrations.Enabled {
		lgr.Info().Msg("Running database migrations...")
		sqlDB := dbs.WIS.SQLDB()
		migrator := appMigrations.NewMigrator(sqlDB, lgr)
		err := migrator.Initialize(ctx)
		sqlDB.Close()
		if err != nil {
			dbs.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
	} else {
		lgr.Info().Msg("Database migrations disabled")
	}

	if err := seed.CreateDefaultData(ctx, dbs.SSO.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbs, nil
}

// BuildDependencies initializes repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, dbs *db.Databases, lgr zerolog.Logger) (*Dependencies, error) {
	if dbs == nil {
		return nil, fmt.Errorf("databases are not initialized")
	}

	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbs)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, lgr)
	deps.Controllers = appControllers.NewControllers(deps.Services, dbs.Pingers(), lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, lgr)
	deps.RateLimiter = appMiddleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	deps.Metrics = appMiddleware.NewMetrics(metricsNamespace)

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

	if err := validation.RegisterGinValidators(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register custom validators")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.Server.CORSOrigin),
		deps.Metrics.Instrument(),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, appRoutes.Options{
		Auth:        deps.AuthMiddleware,
		RateLimiter: deps.RateLimiter,
		Metrics:     deps.Metrics,
	})

	deps.RateLimiter.StartCleanup(rateLimitCleanupTick)

	return router
}
