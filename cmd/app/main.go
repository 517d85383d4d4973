package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tetris_webapp/internal/cache"
	"tetris_webapp/internal/config"
	"tetris_webapp/internal/db"
	httpServer "tetris_webapp/internal/http"
	"tetris_webapp/internal/http/handlers"
	"tetris_webapp/internal/logger"
	"tetris_webapp/internal/repository"
	"tetris_webapp/internal/service"
	"tetris_webapp/internal/ws"

	"github.com/gin-gonic/gin"
)

// Version устанавливается при сборке
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// логгер еще не настроен
		logger.Fatal("config error", "error", err)
	}

	// Инициализация структурированного логгера
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.Get()

	ctx := context.Background()

	// хранилище рекордов: Postgres или память процесса
	var (
		store repository.ScoreStore
		ping  func(context.Context) error
	)
	if cfg.DatabaseURL != "" {
		dbPool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect failed", "error", err)
		}
		defer dbPool.Close()

		if err := db.EnsureSchema(ctx, dbPool); err != nil {
			logger.Fatal("db schema failed", "error", err)
		}
		store = repository.NewScoreRepository(dbPool)
		ping = dbPool.Ping
	} else {
		log.Warn("DATABASE_URL not set - scores are kept in memory")
		store = repository.NewMemoryScoreRepository()
	}

	// кэш топа в redis, без него все запросы идут в хранилище
	var topCache service.TopCache
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Error("redis unavailable, leaderboard cache disabled", "error", err)
		} else {
			defer rdb.Close()
			topCache = cache.NewLeaderboardCache(rdb, cfg.LeaderboardCacheTTL)
			log.Info("leaderboard cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.LeaderboardCacheTTL)
		}
	}

	leaderboard := service.NewLeaderboardService(store, topCache, cfg.Game.Leaderboard)

	hub := ws.NewHub(leaderboard, cfg.Game.Play.FrameInterval)
	wsHandler := ws.NewWSHandler(hub, cfg.AllowedOrigins)

	r := gin.New()
	r.Use(logger.GinMiddleware(), gin.Recovery())

	httpServer.RegisterRoutes(r, handlers.NewHandler(leaderboard, ping), wsHandler, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Info("server started", "port", cfg.AppPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// сначала закрываем игровые сессии, потом HTTP
	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
