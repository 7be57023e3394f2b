package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillmatrix_backend/internal/config"
	"skillmatrix_backend/internal/controller"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/internal/service"
	"skillmatrix_backend/pkg/database"
	"skillmatrix_backend/pkg/logger"
	"skillmatrix_backend/pkg/monitoring"
	"skillmatrix_backend/pkg/security"
	"skillmatrix_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user       *repository.UserRepository
	catalog    *repository.CatalogRepository
	question   *repository.QuestionRepository
	assessment *repository.AssessmentRepository
	invite     *repository.InviteRepository
	attempt    *repository.AttemptRepository
	skill      *repository.SkillRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	catalog   *service.CatalogService
	invite    *service.InviteService
	skill     *service.SkillService
	attempt   *service.AttemptService
	grading   *service.GradingService
	dashboard *service.DashboardService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	catalog    *controller.CatalogController
	assessment *controller.AssessmentController
	dashboard  *controller.DashboardController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		catalog:    repository.NewCatalogRepository(db),
		question:   repository.NewQuestionRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		invite:     repository.NewInviteRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		skill:      repository.NewSkillRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.skill, repos.attempt, repos.catalog)
	s.catalog = service.NewCatalogService(repos.catalog, repos.question, repos.assessment)
	s.invite = service.NewInviteService(repos.invite, repos.user, repos.assessment, repos.catalog, cfg.Invites.TTLHours)
	s.skill = service.NewSkillService(repos.skill, db)
	s.attempt = service.NewAttemptService(repos.attempt, repos.invite, repos.assessment, repos.question, s.skill, db)
	s.grading = service.NewGradingService(repos.attempt, repos.question, repos.user, repos.catalog, s.attempt, db)
	s.dashboard = service.NewDashboardService(repos.user, repos.catalog, repos.attempt, repos.skill, s.invite, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user, s.invite),
		catalog:    controller.NewCatalogController(s.catalog),
		assessment: controller.NewAssessmentController(s.invite, s.attempt, s.grading),
		dashboard:  controller.NewDashboardController(s.dashboard),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks runs the invite expiry sweep on a fixed interval.
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			if _, err := s.invite.SweepExpired(); err != nil {
				logger.Log.Error("invite expiry sweep error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		if err := database.Seed(db); err != nil {
			logger.Log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	// The dashboard cache degrades to direct queries without redis, so a
	// missing cache is a warning, not a startup failure.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, dashboard caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("skillmatrix-backend", cfg); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	app.startBackgroundTasks(services)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
