package main

import (
	_ "todoapi/docs"
	"todoapi/internal/config"
	"todoapi/internal/logger"
	"todoapi/internal/server"
)

// @title           Todo Task Management API
// @version         1.0
// @description     API for managing user tasks.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	s, err := server.Init(cfg)
	if err != nil {
		logger.Fatal("❌ Server initialization failed", "error", err)
	}

	s.Run()
}
