package main

import (
	"os"

	"bloodbank-backend/internal/config"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/models"

	"github.com/rs/zerolog"
)

// migrate creates or updates the Requests table from the model.
func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("could not load config")
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Env)

	db, err := config.ConnectDB(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer config.CloseDB(db)

	if err := db.AutoMigrate(&models.BloodRequest{}); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Str("table", models.BloodRequest{}.TableName()).Msg("migration complete")
}
