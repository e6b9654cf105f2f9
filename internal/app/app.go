package app

import (
	"context"
	"driveflow_backend/internal/config"
	"driveflow_backend/internal/controller"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/service"
	"driveflow_backend/pkg/database"
	"driveflow_backend/pkg/logger"
	"driveflow_backend/pkg/monitoring"
	"driveflow_backend/pkg/security"
	"driveflow_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	tracer *sdktrace.TracerProvider
}

type repositories struct {
	user             *repository.UserRepository
	school           *repository.SchoolRepository
	license          *repository.LicenseRepository
	vehicle          *repository.VehicleRepository
	teachingCategory *repository.TeachingCategoryRepository
	enrollment       *repository.EnrollmentRepository
	appointment      *repository.AppointmentRepository
	examTemplate     *repository.ExamTemplateRepository
	evaluation       *repository.EvaluationRepository
	document         *repository.DocumentRepository
}

type services struct {
	storage          *service.StorageService
	auth             *service.AuthService
	user             *service.UserService
	school           *service.SchoolService
	license          *service.LicenseService
	vehicle          *service.VehicleService
	teachingCategory *service.TeachingCategoryService
	enrollment       *service.EnrollmentService
	appointment      *service.AppointmentService
	examTemplate     *service.ExamTemplateService
	evaluation       *service.EvaluationService
	document         *service.DocumentService
}

type controllers struct {
	auth             *controller.AuthController
	user             *controller.UserController
	school           *controller.SchoolController
	license          *controller.LicenseController
	vehicle          *controller.VehicleController
	teachingCategory *controller.TeachingCategoryController
	enrollment       *controller.EnrollmentController
	appointment      *controller.AppointmentController
	examTemplate     *controller.ExamTemplateController
	evaluation       *controller.EvaluationController
	document         *controller.DocumentController
	health           *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:             repository.NewUserRepository(db),
		school:           repository.NewSchoolRepository(db),
		license:          repository.NewLicenseRepository(db),
		vehicle:          repository.NewVehicleRepository(db),
		teachingCategory: repository.NewTeachingCategoryRepository(db),
		enrollment:       repository.NewEnrollmentRepository(db),
		appointment:      repository.NewAppointmentRepository(db),
		examTemplate:     repository.NewExamTemplateRepository(db),
		evaluation:       repository.NewEvaluationRepository(db),
		document:         repository.NewDocumentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.school)
	s.school = service.NewSchoolService(repos.school)
	s.license = service.NewLicenseService(repos.license)
	s.vehicle = service.NewVehicleService(repos.vehicle, repos.license)
	s.teachingCategory = service.NewTeachingCategoryService(repos.teachingCategory, repos.license)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.teachingCategory, repos.vehicle, repos.user)
	s.appointment = service.NewAppointmentService(repos.appointment, repos.enrollment)
	s.examTemplate = service.NewExamTemplateService(repos.examTemplate, rdb)
	s.evaluation = service.NewEvaluationService(repos.evaluation, repos.appointment, repos.enrollment, repos.user, s.examTemplate)
	s.document = service.NewDocumentService(repos.document, repos.enrollment, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:             controller.NewAuthController(s.auth, s.user),
		user:             controller.NewUserController(s.user),
		school:           controller.NewSchoolController(s.school),
		license:          controller.NewLicenseController(s.license),
		vehicle:          controller.NewVehicleController(s.vehicle),
		teachingCategory: controller.NewTeachingCategoryController(s.teachingCategory),
		enrollment:       controller.NewEnrollmentController(s.enrollment),
		appointment:      controller.NewAppointmentController(s.appointment),
		examTemplate:     controller.NewExamTemplateController(s.examTemplate),
		evaluation:       controller.NewEvaluationController(s.evaluation),
		document:         controller.NewDocumentController(s.document),
		health:           controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	// 只导入基础数据（车型目录、评分表、初始管理员），导入完由 main 退出
	if cfg.SeedOnly {
		if err := database.SeedReferenceData(db); err != nil {
			logger.Log.Fatal("Failed to seed reference data", zap.Error(err))
		}
		logger.Log.Info("Reference data seeded")
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("driveflow-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
