package main

import (
	_ "visionflow/docs"
	"visionflow/internal/config"
	"visionflow/internal/logger"
	"visionflow/internal/server"

	"github.com/rs/zerolog/log"
)

// @title           VisionFlow API
// @version         1.0
// @description     Projects, Kanban boards and tasks for VisionFlow.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()
	lg := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	s, err := server.Init(cfg, lg)
	if err != nil {
		log.Fatal().Err(err).Msg("server initialization failed")
	}

	s.Run()
}
