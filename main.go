package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"backend/config"
	"backend/controllers"
	"backend/importer"
	"backend/middleware"
	"backend/routes"
	"backend/service"
	"backend/store"
	"backend/utils"
)

func main() {
	cfg := config.Load()

	logger, err := utils.InitLogger(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("starting sales browser backend",
		zap.String("env", cfg.Env), zap.String("port", cfg.Port))

	client, err := config.ConnectDatabase(cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	logger.Info("connected to MongoDB")

	salesCollection := client.Database(cfg.DatabaseName).Collection("sales")
	salesStore := store.NewSalesStore(salesCollection, logger)

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := cache.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unavailable, caching disabled", zap.Error(err))
			cache = nil
		}
		cancel()
	}

	// The import must finish before the server accepts traffic; after this
	// point the dataset is read-only.
	loader := importer.NewLoader(salesStore, logger)
	if _, err := loader.Load(context.Background(), cfg.CSVPath); err != nil {
		logger.Fatal("csv import failed", zap.Error(err))
	}

	svc := service.NewSalesService(salesStore, cache, logger)

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.Every(1).Day().At("00:05").Do(func() {
		utils.LogDailyStats(svc, logger)
	})
	scheduler.StartAsync()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowOrigins,
		AllowMethods:  []string{"GET"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	routes.InitializeRoutes(r, controllers.NewSalesController(svc, logger), func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
