// Package main boots the posture backend: configuration, database,
// profile cache, and the Fiber API.
package main

import (
	"time"

	"github.com/secwatch/posture-backend/database"
	"github.com/secwatch/posture-backend/internal/api"
	"github.com/secwatch/posture-backend/internal/cache"
	"github.com/secwatch/posture-backend/internal/config"
	"github.com/secwatch/posture-backend/internal/services"
)

func main() {
	logger := database.InitLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load("")
	if err != nil {
		logger.Sugar().Fatalf("Failed to load configuration: %v", err)
	}

	db := database.InitializeDatabase()

	store := cache.New(time.Duration(cfg.CacheTTLMinutes) * time.Minute)
	svc := services.NewProfileService(db, store, logger)

	app := api.NewFiberApp(svc, cfg)

	logger.Sugar().Infof("posture-backend listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Sugar().Fatalf("Server stopped: %v", err)
	}
}
