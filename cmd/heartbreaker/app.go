package main

import (
	"os"

	"github.com/Rukaro/HeartBreaker/internal/config"
	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/logging"
	"github.com/Rukaro/HeartBreaker/internal/storage"
)

func configPath() string {
	if p := os.Getenv(constants.EnvConfigPath); p != "" {
		return p
	}
	return constants.DefaultConfigPath
}

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid heartbreaker configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
