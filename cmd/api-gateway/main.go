package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/datepool-api/api/swagger"
	"github.com/noah-isme/datepool-api/internal/handler"
	"github.com/noah-isme/datepool-api/internal/middleware"
	"github.com/noah-isme/datepool-api/internal/repository"
	"github.com/noah-isme/datepool-api/internal/service"
	"github.com/noah-isme/datepool-api/pkg/cache"
	"github.com/noah-isme/datepool-api/pkg/config"
	"github.com/noah-isme/datepool-api/pkg/database"
	"github.com/noah-isme/datepool-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/datepool-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/datepool-api/pkg/middleware/requestid"
)

// @title Datepool API
// @version 1.0.0
// @description Stratified random date sampling service
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis is optional: the cache repository degrades to a pass-through
	// when no client is available.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	dateSetRepo := repository.NewDateSetRepository(db)
	dateSetSvc := service.NewDateSetService(dateSetRepo, cacheRepo, validator.New(), logr, metricsSvc,
		service.DateSetServiceConfig{CacheTTL: cfg.DateSets.CacheTTL})
	dateSetHandler := handler.NewDateSetHandler(dateSetSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/date-sets", dateSetHandler.Generate)
		api.GET("/date-sets", dateSetHandler.List)
		api.GET("/date-sets/generate", dateSetHandler.GenerateFromQuery)
		api.GET("/date-sets/:id", dateSetHandler.Get)
		api.DELETE("/date-sets/:id", dateSetHandler.Delete)
		api.POST("/date-sets/:id/regenerate", dateSetHandler.Regenerate)
		api.GET("/date-sets/:id/export", dateSetHandler.Export)
		api.GET("/weekdays", dateSetHandler.Weekdays)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
