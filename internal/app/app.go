package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/auth"
	"github.com/SAP-F-2025/quiz-generation-service/internal/cache"
	"github.com/SAP-F-2025/quiz-generation-service/internal/config"
	"github.com/SAP-F-2025/quiz-generation-service/internal/extractor"
	"github.com/SAP-F-2025/quiz-generation-service/internal/generation"
	"github.com/SAP-F-2025/quiz-generation-service/internal/handlers"
	"github.com/SAP-F-2025/quiz-generation-service/internal/llm"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-generation-service/internal/services"
	"github.com/SAP-F-2025/quiz-generation-service/internal/storage"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/SAP-F-2025/quiz-generation-service/internal/validator"
	"github.com/SAP-F-2025/quiz-generation-service/pkg"
	"github.com/SAP-F-2025/quiz-generation-service/pkg/monitoring"
	"github.com/SAP-F-2025/quiz-generation-service/pkg/security"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Logger utils.Logger

	closers []func() error
	stop    chan struct{}
}

// NewApp wires every dependency. forceMigrate runs the schema migration even
// when DATABASE_AUTO_MIGRATE is off.
func NewApp(ctx context.Context, cfg *config.Config, forceMigrate bool) (*App, error) {
	logger := NewLogger(cfg)
	slogger := utils.ToSlogLogger(logger)
	logger.Info("Logger initialized", "environment", cfg.Environment, "level", cfg.LogLevel)
	warnInsecureDefaults(cfg, logger)

	a := &App{
		Config: cfg,
		Logger: logger,
		stop:   make(chan struct{}),
	}

	db, err := OpenDatabase(cfg, forceMigrate, logger)
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.onClose(func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})

	rdb, err := pkg.NewRedisClient(cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	quizCacheBackend := cache.NewNopCache()
	if rdb != nil {
		a.Redis = rdb
		a.onClose(rdb.Close)
		quizCacheBackend = cache.NewRedisCache(rdb, slogger)
		logger.Info("Quiz cache enabled", "ttl", cfg.QuizCacheTTL)
	}

	stager, err := newStager(ctx, cfg, slogger)
	if err != nil {
		a.Close()
		return nil, err
	}

	completer, closeCompleter, err := llm.New(ctx, cfg.LLM, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}
	a.onClose(closeCompleter)

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	a.onClose(publisher.Close)

	authenticator, err := auth.NewAuthenticator(cfg, slogger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize authenticator: %w", err)
	}

	repo := postgres.NewRepository(db)
	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      repo,
		Generator: generation.NewGenerator(completer, cfg.Generation.Timeout, logger),
		Extractor: extractor.New(logger),
		Stager:    stager,
		Quizzes:   cache.NewQuizCache(quizCacheBackend, cfg.QuizCacheTTL, slogger),
		Publisher: publisher,
		Tokens:    services.TokenConfig{Secret: cfg.JWTSecret, Expiry: cfg.JWTExpiry},
		Logger:    slogger,
		Validator: validator.New(),
	})

	monitoring.Init()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	a.setupMiddlewares(router)

	handlerManager := handlers.NewHandlerManager(serviceManager, authenticator, cfg.Storage.MaxUploadBytes, logger)
	handlerManager.SetupRoutes(router, repo)
	a.Router = router

	return a, nil
}

func warnInsecureDefaults(cfg *config.Config, logger utils.Logger) {
	if cfg.InsecureJWTSecret() && !cfg.IsDevelopment() {
		logger.Warn("JWT_SECRET is the built-in default, set a private secret",
			"environment", cfg.Environment)
	}
}

// NewLogger builds the process logger from LOG_* settings.
func NewLogger(cfg *config.Config) utils.Logger {
	format := cfg.LogFormat
	if format == "" {
		format = "text"
		if cfg.IsProduction() {
			format = "json"
		}
	}
	return utils.NewLogger(utils.LogOptions{
		Level:    cfg.LogLevel,
		Format:   format,
		FilePath: cfg.LogFile,
	})
}

// OpenDatabase connects and, when enabled or forced, migrates the schema.
func OpenDatabase(cfg *config.Config, forceMigrate bool, logger utils.Logger) (*gorm.DB, error) {
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info("Database connected", "driver", cfg.DatabaseDriver)

	if cfg.AutoMigrate || forceMigrate {
		if err := pkg.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database migrated")
	}
	return db, nil
}

func newStager(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Stager, error) {
	switch strings.ToLower(cfg.Storage.Type) {
	case "", "local":
		return storage.NewLocalStager(cfg.Storage.TempDir)
	case "minio":
		return storage.NewMinioStager(ctx, storage.MinioConfig{
			Endpoint:  cfg.Storage.MinioEndpoint,
			AccessKey: cfg.Storage.MinioAccessKey,
			SecretKey: cfg.Storage.MinioSecretKey,
			Bucket:    cfg.Storage.MinioBucket,
			UseSSL:    cfg.Storage.MinioUseSSL,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}

func (a *App) setupMiddlewares(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(utils.ContextLogger(a.Logger))
	router.Use(utils.LoggerMiddleware(a.Logger))
	router.Use(monitoring.MetricsMiddleware())
	router.Use(security.CORS(a.Config.CORSOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.Config.RateLimitPerMinute, time.Minute, a.stop))
}

func (a *App) onClose(fn func() error) {
	if fn != nil {
		a.closers = append(a.closers, fn)
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("Failed to release resource", "error", err)
		}
	}
	a.closers = nil
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("Server running", "port", a.Config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		a.Close()
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	a.Logger.Info("Shutting down server")

	// generation requests can run for minutes
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	a.Close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.Logger.Info("Server exiting")
	return nil
}
