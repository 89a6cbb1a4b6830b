package main

import (
	"os"

	"note-to-self/internal/config"
	"note-to-self/internal/model"
	"note-to-self/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.DefaultPoolConfig(), true)
	if err != nil {
		color.Red("Error: failed to connect to database: %v", err)
		os.Exit(1)
	}

	models := model.Models()
	color.Cyan("Running AutoMigrate for %d tables...", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	color.Green("Success: notebooks and cells are up to date")
}
