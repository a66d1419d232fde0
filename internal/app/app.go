package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mathtatag_backend/internal/config"
	"mathtatag_backend/internal/controller"
	"mathtatag_backend/internal/repository"
	"mathtatag_backend/internal/service"
	"mathtatag_backend/pkg/configwatcher"
	"mathtatag_backend/pkg/database"
	"mathtatag_backend/pkg/logger"
	"mathtatag_backend/pkg/monitoring"
	"mathtatag_backend/pkg/security"
	"mathtatag_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configFile = "configs/config.yaml"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	classroom *repository.ClassroomRepository
	learner   *repository.LearnerRepository
	homeTask  *repository.HomeTaskRepository
	cache     *repository.DashboardCache
}

type services struct {
	settings       *service.ScoringSettings
	storage        service.StorageProvider
	auth           *service.AuthService
	classroom      *service.ClassroomService
	learner        *service.LearnerService
	recommendation *service.RecommendationService
	task           *service.TaskService
	dashboard      *service.DashboardService
	importer       *service.ImportService
	report         *service.ReportService
}

type controllers struct {
	auth      *controller.AuthController
	admin     *controller.AdminController
	classroom *controller.ClassroomController
	parent    *controller.ParentController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// applyConfig 配置文件变更后依次通知回调
func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		classroom: repository.NewClassroomRepository(db),
		learner:   repository.NewLearnerRepository(db),
		homeTask:  repository.NewHomeTaskRepository(db),
		cache:     repository.NewDashboardCache(rdb, time.Duration(cfg.Redis.DashboardTTL)*time.Second),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.settings = service.NewScoringSettings(cfg.Scoring)
	s.storage = service.NewStorageProvider(context.Background(), cfg)
	s.auth = service.NewAuthService(repos.user, repos.cache, cfg)
	s.classroom = service.NewClassroomService(repos.classroom, repos.cache)
	s.learner = service.NewLearnerService(repos.learner, repos.classroom, repos.user, repos.cache, s.settings)
	s.recommendation = service.NewRecommendationService(service.NewPersonalizationClient(cfg.Personalization))
	s.task = service.NewTaskService(repos.homeTask, repos.learner, repos.user, s.recommendation, repos.cache)
	s.dashboard = service.NewDashboardService(repos.user, repos.classroom, repos.learner, repos.homeTask, repos.cache, s.settings)
	s.importer = service.NewImportService(repos.user, repos.classroom, repos.learner, repos.homeTask, repos.cache)
	s.report = service.NewReportService(s.dashboard, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		admin:     controller.NewAdminController(s.auth, s.dashboard, s.importer),
		classroom: controller.NewClassroomController(s.classroom, s.learner, s.dashboard, s.report),
		parent:    controller.NewParentController(s.task, s.dashboard),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// release 模式默认不迁移，需显式 -migrate
	if cfg.ForceMigrate || cfg.Server.Mode == "debug" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if err := database.SeedAdmin(db, cfg.Admin); err != nil {
		logger.Log.Error("Failed to seed admin account", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	// 缓存不可用时看板直接查库
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, dashboard cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.settings.Update(newCfg.Scoring)
		logger.Log.Info("Scoring settings reloaded",
			zap.Int("testTotal", newCfg.Scoring.TestTotal),
			zap.Int("passThreshold", newCfg.Scoring.PassThreshold),
		)
	})

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("mathtatag", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if _, ok := services.storage.(*service.LocalStorageProvider); ok {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 配置热更新
	go func() {
		if err := configwatcher.WatchConfig(ctx, configFile, a.applyConfig); err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
