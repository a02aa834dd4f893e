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

	"visionflow/internal/auth"
	"visionflow/internal/config"
	"visionflow/internal/handler"
	"visionflow/internal/lock"
	"visionflow/internal/middleware"
	"visionflow/internal/migrations"
	"visionflow/internal/notify"
	"visionflow/internal/repository"
	"visionflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// hub is the live-update transport: Redis when configured, in-process otherwise.
type hub interface {
	notify.Emitter
	notify.Broadcaster
	handler.BoardSubscriber
}

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config

	redis  *notify.RedisHub
	cancel context.CancelFunc
}

func Init(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	if cfg.MigrateOnStart {
		if err := migrations.Up(cfg.MigrateURL()); err != nil {
			return nil, fmt.Errorf("server.Init: migrate: %w", err)
		}
		log.Info().Msg("database schema is up to date")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("server.Init: connect to DB: %w", err)
	}
	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("connected to database")

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{DB: db, Config: cfg, cancel: cancel}

	var live hub
	locker := lock.Locker(lock.NewMemoryLocker())
	if cfg.RedisAddr != "" {
		rh, err := notify.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("server.Init: %w", err)
		}
		s.redis = rh
		live = rh
		locker = lock.NewRedisLocker(rh.Client(), 0)
		log.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")
	} else {
		live = notify.NewLocalHub()
		log.Warn().Msg("REDIS_ADDR not set, live updates stay inside this instance")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	boards := service.NewBoardService(
		projectRepo, projectRepo, taskRepo,
		notify.Multi{notify.NewLogEmitter(logger), live},
		live,
		service.WithLocker(locker),
	)

	// Handlers
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	userHandler := handler.NewUserHandler(userRepo, tokens)
	projectHandler := handler.NewProjectHandler(projectRepo, memberRepo, userRepo)
	boardHandler := handler.NewBoardHandler(boards, memberRepo, live, cfg.CORSOrigins)
	taskHandler := handler.NewTaskHandler(taskRepo, commentRepo, boards, memberRepo, projectRepo)
	reportHandler := handler.NewReportHandler(reportRepo, projectRepo)
	teamHandler := handler.NewTeamHandler(teamRepo, userRepo, memberRepo)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	public := r.Group("/auth", middleware.RateLimitByIP(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
	}

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		authorized.GET("/users", userHandler.List)
		authorized.GET("/users/me", userHandler.Me)
		authorized.PUT("/users/me", userHandler.UpdateMe)
		authorized.POST("/users/me/password", userHandler.ChangePassword)
		authorized.GET("/users/:id", userHandler.GetByID)
		authorized.PUT("/users/:id", userHandler.Update)
		authorized.PATCH("/users/:id/role", userHandler.ChangeRole)

		// Team routes
		authorized.GET("/teams", teamHandler.List)
		authorized.POST("/teams", teamHandler.Create)
		authorized.GET("/teams/:id", teamHandler.GetByID)
		authorized.PUT("/teams/:id", teamHandler.Update)
		authorized.DELETE("/teams/:id", teamHandler.Delete)
		authorized.POST("/teams/:id/members", teamHandler.AddMember)
		authorized.DELETE("/teams/:id/members/:user_id", teamHandler.RemoveMember)
		authorized.POST("/teams/:id/projects", teamHandler.AddProject)
		authorized.DELETE("/teams/:id/projects/:project_id", teamHandler.RemoveProject)

		// Project routes
		authorized.GET("/projects", projectHandler.List)
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)
		authorized.POST("/projects/:id/members", projectHandler.AddMember)
		authorized.DELETE("/projects/:id/members/:user_id", projectHandler.RemoveMember)

		// Board routes
		authorized.GET("/projects/:id/board", boardHandler.Get)
		authorized.PUT("/projects/:id/board", boardHandler.Replace)
		authorized.POST("/projects/:id/board/move", boardHandler.Move)
		authorized.GET("/projects/:id/board/columns/:column_id/tasks", boardHandler.ColumnTasks)
		authorized.GET("/projects/:id/board/ws", boardHandler.Socket)

		// Task routes
		authorized.GET("/tasks", taskHandler.List)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
		authorized.GET("/tasks/:id/comments", taskHandler.ListComments)
		authorized.POST("/tasks/:id/comments", taskHandler.AddComment)
		authorized.DELETE("/tasks/:id/comments/:comment_id", taskHandler.DeleteComment)

		// Report routes
		authorized.GET("/reports/dashboard", reportHandler.Dashboard)
		authorized.GET("/reports/tasks-by-status", reportHandler.TasksByStatus)
		authorized.GET("/reports/tasks-by-priority", reportHandler.TasksByPriority)
		authorized.GET("/reports/project-progress", reportHandler.ProjectProgress)
		authorized.GET("/reports/task-completion-trend", reportHandler.CompletionTrend)
	}

	s.Engine = r
	return s, nil
}

func (s *Server) Run() {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.Config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           c.Handler(s.Engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", s.Config.ServerPort).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	s.Close()

	log.Info().Msg("server exited properly")
}

// Close releases Redis and the database pool.
func (s *Server) Close() {
	s.cancel()
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis")
		}
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
