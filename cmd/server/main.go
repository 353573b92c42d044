package main

import (
	_ "baudboard/docs"
	"baudboard/internal/config"
	"baudboard/internal/logger"
	"baudboard/internal/server"

	log "github.com/sirupsen/logrus"
)

// @title           Baudboard API
// @version         1.0
// @description     Kanban boards with ordered columns and cards.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel, cfg.LogFormat)

	s, err := server.Init(cfg, l)
	if err != nil {
		l.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
