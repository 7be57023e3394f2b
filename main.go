// @title Skill Matrix API
// @version 1.0
// @description Backend for the team skill matrix: assessment invites, attempts, grading and skill leveling.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"skillmatrix_backend/internal/app"
	"skillmatrix_backend/internal/config"
	"skillmatrix_backend/pkg/configwatcher"
	"skillmatrix_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config file reloaded",
			zap.String("port", newCfg.Server.Port),
			zap.String("mode", newCfg.Server.Mode),
		)
	})

	application.Run()
}
