package main

import (
	"fmt"
	"os"

	"github.com/VYR4L/backend-expense-tracker/internal/config"
	"github.com/VYR4L/backend-expense-tracker/internal/database"
	"github.com/VYR4L/backend-expense-tracker/internal/router"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("EXPTRACKER_CONFIG"))
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	r := router.Setup(cfg, db, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Infof("expense tracker listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
