package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nailroom/salon-scheduler/internal/cache"
	"github.com/nailroom/salon-scheduler/internal/config"
	dbpkg "github.com/nailroom/salon-scheduler/internal/db"
	"github.com/nailroom/salon-scheduler/internal/logger"
	"github.com/nailroom/salon-scheduler/internal/middleware"
	"github.com/nailroom/salon-scheduler/internal/routes"
	"github.com/nailroom/salon-scheduler/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	var visits cache.VisitCounter
	if cfg.RedisAddr != "" {
		rv := cache.NewRedisVisits(cfg)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rv.Ping(ctx); err != nil {
			log.Warn("redis unreachable, visit counts may fail", zap.Error(err))
		}
		cancel()

		visits = rv
	} else {
		log.Info("REDIS_ADDR not set, using in-memory visit counter")
		visits = cache.NewMemoryVisits()
	}

	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		uploader = storage.NewS3Storage(cfg)
	} else {
		log.Info("S3_BUCKET not set, avatar uploads disabled")
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORSMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, visits, uploader)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
