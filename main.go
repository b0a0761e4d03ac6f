package main

import (
	"context"
	"embed"
	"log"

	"actionaudit/adapters/excel"
	"actionaudit/adapters/postgres"
	"actionaudit/app"
	"actionaudit/internal/config"
	"actionaudit/internal/errors"
	"actionaudit/ports"
	"actionaudit/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed ui/templates/*
var embeddedFiles embed.FS

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "failed to prepare database schema")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Run history needs a database; without one the analyzer still works,
	// it just cannot persist anything.
	var runs ports.RunRepository
	if appConfig.Database.Enabled() {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatal("Failed to initialize database:", err)
		}
		defer db.Close()

		runs = postgres.NewRunRepository(db)
		log.Println("Run history enabled")
	} else {
		log.Println("DATABASE_URL not set, run history disabled")
	}

	analyzer := app.NewAnalyzerService(excel.NewWorkbookDecoder(), runs, nil)

	// Initialize web server
	server := ui.NewServer(embeddedFiles)
	if err := server.Initialize(analyzer, appConfig); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start the server
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
