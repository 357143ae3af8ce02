package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/pucknotes/server/internal/app/controllers"
	appMigrations "github.com/pucknotes/server/internal/app/migrations"
	"github.com/pucknotes/server/internal/app/models"
	appRepos "github.com/pucknotes/server/internal/app/repositories"
	appRoutes "github.com/pucknotes/server/internal/app/routes"
	appServices "github.com/pucknotes/server/internal/app/services"
	"github.com/pucknotes/server/internal/config"
	"github.com/pucknotes/server/internal/db"
	appMiddleware "github.com/pucknotes/server/internal/middleware"
	pkgAuth "github.com/pucknotes/server/internal/pkg/auth"
	"github.com/pucknotes/server/internal/pkg/filestorage"
	"github.com/pucknotes/server/internal/pkg/logger"
	"github.com/pucknotes/server/internal/pkg/session"
	"github.com/pucknotes/server/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CatalogService    appServices.CatalogService
	FileService       appServices.FileService
	NoteService       appServices.NoteService
	CommentService    appServices.CommentService
	ListingService    appServices.ListingService
	EngagementService appServices.EngagementService
	ReportService     appServices.ReportService
	SessionService    appServices.SessionService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	SessionStore   *session.RedisStore
	ObjectStore    filestorage.ObjectStore
	Logger         zerolog.Logger
}

// Close releases the connections owned by the dependencies
func (d *Dependencies) Close() {
	if d.SessionStore != nil {
		if err := d.SessionStore.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close session store")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Server.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, logger.Component("migrator"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database)

	// Create Default Data (after migrations)
	mod := seed.ModeratorAccount{
		Email:    cfg.Seed.ModeratorEmail,
		Username: cfg.Seed.ModeratorUsername,
		Password: cfg.Seed.ModeratorPassword,
	}
	if err := seed.CreateDefaultData(ctx, deps.Repos, mod, logger.Component("seed")); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	var err error
	deps.ObjectStore, err = filestorage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	lgr.Info().Str("backend", cfg.Storage.Backend).Msg("File storage ready")

	deps.SessionStore, err = session.NewRedisStore(cfg.Redis.URL, cfg.Redis.Prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		SessionDuration: cfg.SessionDuration(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	repos := deps.Repos
	deps.CatalogService = appServices.NewCatalogService(repos.CatalogRepository)
	deps.FileService = appServices.NewFileService(repos.FileRepository, deps.ObjectStore, logger.Component("files"))
	deps.NoteService = appServices.NewNoteService(repos.NoteRepository, deps.CatalogService, deps.FileService, logger.Component("notes"))
	deps.CommentService = appServices.NewCommentService(repos.CommentRepository, repos.NoteRepository, logger.Component("comments"))
	deps.ListingService = appServices.NewListingService(deps.CatalogService, repos.AccountRepository, repos.NoteRepository, repos.CommentRepository, logger.Component("listing"))
	deps.EngagementService = appServices.NewEngagementService(repos.LikeRepository, repos.NoteRepository, repos.CommentRepository, logger.Component("engagement"))
	deps.ReportService = appServices.NewReportService(repos.ReportRepository, repos.NoteRepository, repos.CommentRepository, logger.Component("reports"))
	deps.SessionService = appServices.NewSessionService(repos.AccountRepository, deps.SessionStore, deps.JWTService, cfg.SessionDuration(), logger.Component("sessions"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.SessionService)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.SessionService, lgr),
		Notes:        appControllers.NewNoteController(deps.NoteService, deps.ListingService, cfg.MaxUploadBytes(), lgr),
		Comments:     appControllers.NewCommentController(deps.CommentService, deps.ListingService),
		NoteLikes:    appControllers.NewEngagementController(deps.EngagementService, models.KindNote),
		CommentLikes: appControllers.NewEngagementController(deps.EngagementService, models.KindComment),
		Reports:      appControllers.NewReportController(deps.ReportService),
	}

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

	appMiddleware.RegisterValidation()

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.Component("http")))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}
