package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khan-masud/exam-station/internal/config"
	"github.com/khan-masud/exam-station/internal/controller"
	"github.com/khan-masud/exam-station/internal/repository"
	"github.com/khan-masud/exam-station/internal/service"
	"github.com/khan-masud/exam-station/pkg/database"
	"github.com/khan-masud/exam-station/pkg/logger"
	"github.com/khan-masud/exam-station/pkg/monitoring"
	"github.com/khan-masud/exam-station/pkg/security"
	"github.com/khan-masud/exam-station/pkg/tracing"

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
	user         *repository.UserRepository
	program      *repository.ProgramRepository
	exam         *repository.ExamRepository
	question     *repository.QuestionRepository
	attempt      *repository.AttemptRepository
	answer       *repository.AnswerRepository
	result       *repository.ResultRepository
	setting      *repository.SettingRepository
	notification *repository.NotificationRepository
	leaderboard  *repository.LeaderboardRepository
}

type services struct {
	auth         *service.AuthService
	settings     *service.SettingsService
	exam         *service.ExamService
	attempt      *service.AttemptService
	submission   *service.SubmissionService
	result       *service.ResultService
	leaderboard  *service.LeaderboardService
	notification *service.NotificationService
	eventHub     *service.EventHub
}

type controllers struct {
	auth         *controller.AuthController
	exam         *controller.ExamController
	attempt      *controller.AttemptController
	result       *controller.ResultController
	leaderboard  *controller.LeaderboardController
	notification *controller.NotificationController
	settings     *controller.SettingsController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		program:      repository.NewProgramRepository(db),
		exam:         repository.NewExamRepository(db),
		question:     repository.NewQuestionRepository(db),
		attempt:      repository.NewAttemptRepository(db),
		answer:       repository.NewAnswerRepository(db),
		result:       repository.NewResultRepository(db),
		setting:      repository.NewSettingRepository(db),
		notification: repository.NewNotificationRepository(db),
		leaderboard:  repository.NewLeaderboardRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.eventHub = service.NewEventHub(rdb)
	go s.eventHub.Run()

	s.auth = service.NewAuthService(repos.user, cfg)
	s.settings = service.NewSettingsService(repos.setting)
	s.exam = service.NewExamService(repos.exam, repos.question, repos.program, s.eventHub)
	s.attempt = service.NewAttemptService(repos.attempt, repos.exam, repos.program, s.settings)
	s.leaderboard = service.NewLeaderboardService(repos.leaderboard, repos.result)
	s.notification = service.NewNotificationService(
		repos.notification,
		repos.user,
		service.NewSMTPEmailSender(cfg.Mail),
		service.NewWebhookSMSSender(cfg.SMS),
	)
	s.submission = service.NewSubmissionService(
		db,
		repos.attempt,
		repos.exam,
		repos.result,
		s.settings,
		s.notification,
		s.leaderboard,
		s.eventHub,
	)
	s.result = service.NewResultService(repos.result, repos.answer, repos.attempt, s.settings)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		exam:         controller.NewExamController(s.exam),
		attempt:      controller.NewAttemptController(s.attempt, s.submission),
		result:       controller.NewResultController(s.result),
		leaderboard:  controller.NewLeaderboardController(s.leaderboard),
		notification: controller.NewNotificationController(s.notification, s.eventHub),
		settings:     controller.NewSettingsController(s.settings),
		health:       controller.NewHealthController(db, rdb),
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
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

	repos := app.initRepositories(db, rdb)
	svcs := app.initServices(repos, cfg, db, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("exam-station", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	if a.services != nil && a.services.eventHub != nil {
		a.services.eventHub.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("Server exiting")
	logger.Log.Sync()
}
