package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mocalumni/alumni-api/api/swagger"
	"github.com/mocalumni/alumni-api/internal/handler"
	"github.com/mocalumni/alumni-api/internal/middleware"
	"github.com/mocalumni/alumni-api/internal/repository"
	"github.com/mocalumni/alumni-api/internal/service"
	"github.com/mocalumni/alumni-api/pkg/cache"
	"github.com/mocalumni/alumni-api/pkg/config"
	"github.com/mocalumni/alumni-api/pkg/database"
	"github.com/mocalumni/alumni-api/pkg/logger"
	corsmiddleware "github.com/mocalumni/alumni-api/pkg/middleware/cors"
	reqidmiddleware "github.com/mocalumni/alumni-api/pkg/middleware/requestid"
)

// @title Alumni Directory API
// @version 1.0.0
// @description Public alumni directory with a review queue for self-submissions
// @BasePath /
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.Migrate(ctx, db); err != nil {
		logr.Sugar().Fatalw("failed to apply schema", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.DirectoryCache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.DirectoryCache.TTL, logr, cfg.DirectoryCache.Enabled)

	validate := service.NewValidator()

	adminRepo := repository.NewAdminRepository(db)
	alumniRepo := repository.NewAlumniRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	authSvc := service.NewAuthService(adminRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	if err := authSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		logr.Sugar().Fatalw("failed to seed admin", "error", err)
	}

	directorySvc := service.NewDirectoryService(alumniRepo, cacheSvc, logr)
	alumniSvc := service.NewAlumniService(alumniRepo, cacheSvc, validate, logr)
	submissionSvc := service.NewSubmissionService(submissionRepo, alumniRepo, cacheSvc, validate, logr)
	exportSvc := service.NewExportService(alumniRepo, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	directoryHandler := handler.NewDirectoryHandler(directorySvc)
	alumniHandler := handler.NewAlumniHandler(alumniSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/login", authHandler.Login)
	api.GET("/alumni", directoryHandler.List)
	api.GET("/alumni/:id", directoryHandler.Get)
	api.GET("/filters", directoryHandler.Filters)
	api.POST("/submit-alumni", submissionHandler.Submit)

	admin := api.Group("", middleware.JWT(authSvc))
	admin.POST("/alumni", alumniHandler.Create)
	admin.PUT("/alumni/:id", alumniHandler.Update)
	admin.DELETE("/alumni/:id", alumniHandler.Delete)
	admin.GET("/pending-submissions", submissionHandler.ListPending)
	admin.POST("/approve-submission/:id", submissionHandler.Approve)
	admin.DELETE("/reject-submission/:id", submissionHandler.Reject)
	admin.POST("/change-password", authHandler.ChangePassword)
	if cfg.Export.Enabled {
		admin.GET("/export/alumni", exportHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
