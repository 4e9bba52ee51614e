package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/uni-timetable-api/api/swagger"
	"github.com/noah-isme/uni-timetable-api/internal/handler"
	"github.com/noah-isme/uni-timetable-api/internal/middleware"
	"github.com/noah-isme/uni-timetable-api/internal/repository"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/cache"
	"github.com/noah-isme/uni-timetable-api/pkg/config"
	"github.com/noah-isme/uni-timetable-api/pkg/database"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
	"github.com/noah-isme/uni-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/uni-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uni-timetable-api/pkg/middleware/requestid"
	"github.com/noah-isme/uni-timetable-api/pkg/storage"
)

// @title University Timetable API
// @version 1.0.0
// @description Session scheduling with room capacity and slot collision checks
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, logr); err != nil {
			logr.Fatal("failed to migrate schema", zap.Error(err))
		}
	}

	if cfg.Accounts.AdminEmail != "" {
		accounts := service.NewUserService(repository.NewUserRepository(db), nil, logr)
		if _, err := accounts.EnsureAdmin(ctx, service.AdminAccount{
			Email:    cfg.Accounts.AdminEmail,
			Password: cfg.Accounts.AdminPassword,
			FullName: cfg.Accounts.AdminFullName,
		}); err != nil {
			logr.Fatal("failed to provision admin account", zap.Error(err))
		}
	}

	var redisClient redis.UniversalClient
	if cfg.Dashboard.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			redisClient = client
			defer client.Close() //nolint:errcheck
		}
	}

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(repository.NewCacheRepository(redisClient), metrics, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	files, err := storage.NewLocalStorage(cfg.Resources.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare resource storage", zap.Error(err))
	}
	purgeQueue := jobs.NewQueue("resource-purge", service.NewPurgeHandler(files, metrics, logr), jobs.QueueConfig{
		Workers:    cfg.Resources.PurgeWorkers,
		MaxRetries: cfg.Resources.PurgeRetries,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
	})
	purgeQueue.Start(ctx)
	defer purgeQueue.Stop()

	handlers, authSvc := buildHandlers(cfg, db, logr, metrics, cacheSvc, files, purgeQueue)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	ops := handler.NewMetricsHandler(metrics, db)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handlers, middleware.JWT(authSvc))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildHandlers(
	cfg *config.Config,
	db *sqlx.DB,
	logr *zap.Logger,
	metrics *service.MetricsService,
	cacheSvc *service.CacheService,
	files *storage.LocalStorage,
	purgeQueue *jobs.Queue,
) (handler.Handlers, *service.AuthService) {
	validate := validator.New()
	tx := repository.NewTransactor(db)

	users := repository.NewUserRepository(db)
	rooms := repository.NewRoomRepository(db)
	classes := repository.NewClassRepository(db)
	units := repository.NewTeachingUnitRepository(db)
	sessions := repository.NewSessionRepository(db)
	wishes := repository.NewWishRepository(db)
	resources := repository.NewResourceRepository(db)
	stats := repository.NewStatsRepository(db)

	authSvc := service.NewAuthService(users, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	sessionSvc := service.NewSessionService(service.SessionServiceDeps{
		Sessions: sessions,
		Rooms:    rooms,
		Classes:  classes,
		Units:    units,
		Tx:       tx,
		Cache:    cacheSvc,
		Metrics:  metrics,
	}, validate, logr, service.SessionConfig{
		AcademicYear:            cfg.Scheduling.AcademicYear,
		EnforceTeacherConflicts: cfg.Scheduling.EnforceTeacherConflicts,
		EnforceDateWeekday:      cfg.Scheduling.EnforceDateWeekday,
	})
	teacherSvc := service.NewTeacherService(service.TeacherServiceDeps{
		Users:   users,
		Units:   units,
		Rooms:   rooms,
		Classes: classes,
		Tx:      tx,
		Purger:  purgeQueue,
		Cache:   cacheSvc,
	}, validate, logr, cfg.Accounts.DefaultTeacherPassword)
	resourceSvc := service.NewResourceService(service.ResourceServiceDeps{
		Repo:   resources,
		Units:  units,
		Store:  files,
		Signer: storage.NewSignedURLSigner(cfg.Resources.SignedURLSecret, cfg.Resources.SignedURLTTL),
		Purger: purgeQueue,
		Cache:  cacheSvc,
	}, validate, logr, service.ResourceConfig{
		APIPrefix:    cfg.APIPrefix,
		MaxFileSize:  cfg.Resources.MaxFileSizeBytes,
		AllowedMIMEs: cfg.Resources.AllowedMIMEs,
	})
	dashboardSvc := service.NewDashboardService(service.DashboardServiceDeps{
		Sessions:  sessions,
		Units:     units,
		Wishes:    wishes,
		Users:     users,
		Resources: resourceSvc,
		Stats:     stats,
		Cache:     cacheSvc,
	}, logr)

	return handler.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Sessions:  handler.NewSessionHandler(sessionSvc),
		Rooms:     handler.NewRoomHandler(service.NewRoomService(rooms, cacheSvc, validate, logr)),
		Classes:   handler.NewClassHandler(service.NewClassService(classes, cacheSvc, validate, logr)),
		Teachers:  handler.NewTeacherHandler(teacherSvc),
		Students:  handler.NewStudentHandler(service.NewStudentService(users, tx, validate, logr)),
		Wishes:    handler.NewWishHandler(service.NewWishService(wishes, units, cacheSvc, validate, logr)),
		Resources: handler.NewResourceHandler(resourceSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Export:    handler.NewExportHandler(service.NewTimetableExportService(sessions, classes, logr)),
	}, authSvc
}
