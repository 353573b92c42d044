package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"baudboard/internal/cache"
	"baudboard/internal/config"
	"baudboard/internal/handler"
	"baudboard/internal/middleware"
	"baudboard/internal/migrations"
	"baudboard/internal/repository"
	"baudboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Logger *log.Logger
}

// handlers groups everything the router dispatches to.
type handlers struct {
	boards  *handler.BoardHandler
	columns *handler.ColumnHandler
	cards   *handler.CardHandler
	labels  *handler.LabelHandler
}

func Init(cfg *config.Config, logger *log.Logger) (*Server, error) {
	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.MigrationURL(), logger); err != nil {
			return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	logger.Info("✅ Connected to database")

	var (
		redisClient *redis.Client
		boardCache  service.BoardCache
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithError(err).Warn("⚠️  Redis unreachable, board cache will miss until it recovers")
		}
		boardCache = cache.NewBoardCache(redisClient, cfg.BoardCacheTTL, logger)
		logger.WithField("addr", cfg.RedisAddr).Info("✅ Board cache enabled")
	}

	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	store := repository.NewGormStore(db)

	boardService := service.NewBoardService(store, boardCache, cfg.BoardTemplate, logger)
	columnService := service.NewColumnService(store, boardCache, logger)
	cardService := service.NewCardService(store, boardCache, logger)
	labelService := service.NewLabelService(store, logger)

	gin.SetMode(cfg.GinMode)
	r := newRouter(logger, handlers{
		boards:  handler.NewBoardHandler(boardService),
		columns: handler.NewColumnHandler(columnService),
		cards:   handler.NewCardHandler(cardService),
		labels:  handler.NewLabelHandler(labelService),
	})

	return &Server{
		Engine: r,
		DB:     db,
		Redis:  redisClient,
		Config: cfg,
		Logger: logger,
	}, nil
}

func newRouter(logger *log.Logger, h handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), middleware.RequestLogger(logger))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health)

		// Board routes
		api.POST("/boards", h.boards.Create)
		api.GET("/boards", h.boards.GetAll)
		api.GET("/boards/:id", h.boards.GetByID)
		api.PUT("/boards/:id", h.boards.Update)
		api.DELETE("/boards/:id", h.boards.Delete)

		// Column routes
		api.POST("/boards/:id/columns", h.columns.Create)
		api.PUT("/boards/:id/columns/reorder", h.columns.Reorder)
		api.PUT("/columns/:id", h.columns.Update)
		api.DELETE("/columns/:id", h.columns.Delete)
		api.GET("/columns/:id/cards", h.columns.GetCards)

		// Card routes
		api.POST("/boards/:id/cards", h.cards.Create)
		api.GET("/cards/:id", h.cards.GetByID)
		api.PUT("/cards/:id", h.cards.Update)
		api.DELETE("/cards/:id", h.cards.Delete)
		api.PUT("/cards/:id/move", h.cards.Move)

		// Label routes
		api.GET("/boards/:id/labels", h.labels.GetByBoardID)
		api.POST("/boards/:id/labels", h.labels.Create)
		api.GET("/labels/:id", h.labels.GetByID)
		api.PUT("/labels/:id", h.labels.Update)
		api.DELETE("/labels/:id", h.labels.Delete)
	}
	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.Logger.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Fatalf("❌ Server forced to shutdown: %s", err)
	}
	s.close()

	s.Logger.Info("✅ Server exited properly")
}

func (s *Server) close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.WithError(err).Warn("closing redis")
		}
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.Logger.WithError(err).Warn("closing database")
		}
	}
}
