package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"engagement-admin-backend/internal/common/cache"
	"engagement-admin-backend/internal/common/config"
	"engagement-admin-backend/internal/common/logger"
	apphttp "engagement-admin-backend/internal/http"
	"engagement-admin-backend/internal/platform/database"
	"engagement-admin-backend/internal/platform/redis"
	"engagement-admin-backend/internal/platform/uploads"
)

// @title           Engagement Admin API
// @version         1.0
// @description     Admin console backend: users, tasks, announcements and Telegram user exports. Console endpoints authenticate with HttpOnly cookies.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name accessToken
// @description accessToken cookie; the refreshToken cookie renews it

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string

// @tag.name auth
// @tag.description Console sessions

// @tag.name users
// @tag.description Console user management and export

// @tag.name tasks
// @tag.description Social and daily tasks

// @tag.name announcements
// @tag.description Announcements with a single active entry

// @tag.name telegram
// @tag.description Telegram mini app users

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("engagement-admin-backend", cfg.Debug)
	log := logger.Component("main")

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// База данных
	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.URL, database.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Debug:           cfg.Debug,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
		log.Info().Msg("Database schema migrated")
	}

	// Redis опционален: без него кэш выключен
	var (
		redisClient *redis.Client
		appCache    cache.Cache = cache.Noop{}
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		appCache = cache.NewCacheService(redisClient, "engagement")
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR is empty, cache disabled")
	}

	store, err := uploads.NewStore(cfg.Server.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Server.UploadDir).Msg("Failed to prepare upload dir")
	}

	srv := apphttp.NewServer(apphttp.Deps{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Cache:   appCache,
		Uploads: store,
		Logger:  logger.Component("http"),
	})

	if cfg.Auth.AdminEmail != "" {
		if err := srv.Auth.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap admin account")
		}
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Ждем сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
