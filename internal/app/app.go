package app

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ravshan88/online-lesson/internal/config"
	"github.com/Ravshan88/online-lesson/internal/controller"
	"github.com/Ravshan88/online-lesson/internal/repository"
	"github.com/Ravshan88/online-lesson/internal/service"
	"github.com/Ravshan88/online-lesson/pkg/database"
	"github.com/Ravshan88/online-lesson/pkg/logger"
	"github.com/Ravshan88/online-lesson/pkg/monitoring"
	"github.com/Ravshan88/online-lesson/pkg/security"
	"github.com/Ravshan88/online-lesson/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user        *repository.UserRepository
	section     *repository.SectionRepository
	material    *repository.MaterialRepository
	attachment  *repository.AttachmentRepository
	question    *repository.QuestionRepository
	progress    *repository.ProgressRepository
	examSession *repository.ExamSessionRepository
}

type services struct {
	auth     *service.AuthService
	user     *service.UserService
	storage  *service.StorageService
	content  *service.ContentService
	question *service.QuestionService
	progress *service.ProgressService
	exam     *service.ExamService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	content  *controller.ContentController
	question *controller.QuestionController
	progress *controller.ProgressController
	exam     *controller.ExamController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		section:     repository.NewSectionRepository(db),
		material:    repository.NewMaterialRepository(db),
		attachment:  repository.NewAttachmentRepository(db),
		question:    repository.NewQuestionRepository(db),
		progress:    repository.NewProgressRepository(db),
		examSession: repository.NewExamSessionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.content = service.NewContentService(repos.section, repos.material, repos.attachment, s.storage)
	s.question = service.NewQuestionService(repos.question, repos.material)
	s.progress = service.NewProgressService(repos.progress, repos.material, repos.question)

	sampler := service.NewExamSampler(rand.NewSource(time.Now().UnixNano()))
	certificates := service.NewCertificateService(cfg.Exam.PassThreshold)
	cache := service.NewExamSessionCache(rdb)
	s.exam = service.NewExamService(
		repos.question,
		repos.examSession,
		cache,
		repos.user,
		sampler,
		certificates,
		&cfg.Exam,
	)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user),
		content:  controller.NewContentController(s.content),
		question: controller.NewQuestionController(s.question),
		progress: controller.NewProgressController(s.progress),
		exam:     controller.NewExamController(s.exam),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("online-lesson", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	if mode == "release" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
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

	logger.Log.Sync()
	log.Println("Server exiting")
}
