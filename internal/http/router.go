package http

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "engagement-admin-backend/docs"
	"engagement-admin-backend/internal/common/cache"
	"engagement-admin-backend/internal/common/config"
	"engagement-admin-backend/internal/common/middleware"
	announcementHandler "engagement-admin-backend/internal/features/announcement/delivery/http"
	announcementRepo "engagement-admin-backend/internal/features/announcement/repository/gormrepo"
	announcementService "engagement-admin-backend/internal/features/announcement/service"
	authHandler "engagement-admin-backend/internal/features/auth/delivery/http"
	authRepo "engagement-admin-backend/internal/features/auth/repository/gormrepo"
	authService "engagement-admin-backend/internal/features/auth/service"
	taskHandler "engagement-admin-backend/internal/features/task/delivery/http"
	taskModels "engagement-admin-backend/internal/features/task/models"
	taskRepo "engagement-admin-backend/internal/features/task/repository/gormrepo"
	taskService "engagement-admin-backend/internal/features/task/service"
	telegramHandler "engagement-admin-backend/internal/features/telegram/delivery/http"
	telegramRepo "engagement-admin-backend/internal/features/telegram/repository/gormrepo"
	telegramService "engagement-admin-backend/internal/features/telegram/service"
	userHandler "engagement-admin-backend/internal/features/user/delivery/http"
	userRepo "engagement-admin-backend/internal/features/user/repository/gormrepo"
	userService "engagement-admin-backend/internal/features/user/service"
	"engagement-admin-backend/internal/platform/database"
	"engagement-admin-backend/internal/platform/redis"
	"engagement-admin-backend/internal/platform/uploads"
)

const serviceName = "engagement-admin-backend"

// Deps собирает все внешние зависимости роутера
type Deps struct {
	Config  *config.Config
	DB      *database.Client
	Redis   *redis.Client // nil, если кэш выключен
	Cache   cache.Cache
	Uploads *uploads.Store
	Logger  zerolog.Logger
}

// Server is the assembled gin engine plus the services main needs after
// wiring (admin bootstrap).
type Server struct {
	Engine *gin.Engine
	Auth   authService.AuthService
}

// NewServer wires repositories, services and handlers onto a fresh engine.
func NewServer(deps Deps) *Server {
	cfg := deps.Config
	logger := deps.Logger
	db := deps.DB.DB()

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.HandleErrors(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "init_data"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Репозитории
	users := userRepo.NewGormRepository(db)
	refreshTokens := authRepo.NewGormRepository(db)

	// Сервисы
	issuer := authService.NewTokenService(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.RefreshTokenSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
		refreshTokens,
	)
	authSvc := authService.NewAuthService(users, refreshTokens, issuer, logger.With().Str("service", "auth").Logger())
	userSvc := userService.NewUserService(users, refreshTokens, logger.With().Str("service", "user").Logger())
	socialSvc := taskService.NewTaskService(taskModels.KindSocial, taskRepo.NewGormRepository(db, taskModels.KindSocial), logger.With().Str("service", "social_task").Logger())
	dailySvc := taskService.NewTaskService(taskModels.KindDaily, taskRepo.NewGormRepository(db, taskModels.KindDaily), logger.With().Str("service", "daily_task").Logger())
	announcementSvc := announcementService.NewAnnouncementService(announcementRepo.NewGormRepository(db), deps.Uploads, logger.With().Str("service", "announcement").Logger())
	telegramSvc := telegramService.NewTelegramUserService(telegramRepo.NewGormRepository(db), deps.Cache, cfg.Redis.CacheTTL, logger.With().Str("service", "telegram_user").Logger())

	cookies := authHandler.Cookies{
		AccessTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
		Secure:     cfg.Auth.CookieSecure,
	}
	session := authHandler.Session(authSvc, cookies)

	// Публичные роуты авторизации
	authHandler.NewAuthHandler(authSvc, cookies).RegisterRoutes(&router.RouterGroup, session)

	// Консоль: все роуты за сессией
	console := router.Group("")
	console.Use(session)
	{
		userHandler.NewUserHandler(userSvc).RegisterRoutes(console)
		taskHandler.NewTaskHandler(socialSvc).RegisterRoutes(console)
		taskHandler.NewTaskHandler(dailySvc).RegisterRoutes(console)
		announcementHandler.NewAnnouncementHandler(announcementSvc, deps.Uploads, cfg.Server.MaxUploadBytes).RegisterRoutes(console)
	}

	// Telegram: выгрузка для консоли и роут мини-аппа
	tgHandler := telegramHandler.NewTelegramUserHandler(telegramSvc)
	tgHandler.RegisterRoutes(console)
	if cfg.Telegram.BotToken != "" {
		tgHandler.RegisterMiniAppRoutes(&router.RouterGroup, middleware.TelegramInitData(cfg.Telegram.BotToken, cfg.Telegram.InitDataTTL))
	} else {
		logger.Warn().Msg("BOT_TOKEN is empty, mini app routes disabled")
	}

	router.Static(strings.TrimSuffix(uploads.PublicPrefix, "/"), deps.Uploads.Dir())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerProbes(router, deps)

	if cfg.Server.StaticDir != "" {
		router.NoRoute(spaFallback(cfg.Server.StaticDir))
	}

	return &Server{Engine: router, Auth: authSvc}
}

func registerProbes(router *gin.Engine, deps Deps) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})

	// Liveness probe
	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Readiness probe
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Проверка базы
		if err := deps.DB.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "database unavailable",
				"details": err.Error(),
			})
			return
		}

		// Проверка Redis, если он включен
		if deps.Redis != nil {
			if err := deps.Redis.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})
}

// spaFallback serves files from dir and falls back to index.html so that
// client side routes of the console survive a reload.
func spaFallback(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		name := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		c.File(index)
	}
}
