package main

import (
	"flag"
	"os"

	"server/cmd/migration/seed"
	"server/config"
	"server/internal/database"
	"server/internal/logger"

	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	seedData := flag.Bool("seed", false, "seed development data after migrating")
	migrationsDir := flag.String("dir", "migrations", "directory containing migration files")
	flag.Parse()

	log := logger.New("migration")

	config, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	sqlDB, err := db.SQL.DB()
	if err != nil {
		log.Er("failed to get database handle", err)
		os.Exit(1)
	}

	migrations := &migrate.FileMigrationSource{Dir: *migrationsDir}
	applied, err := migrate.Exec(sqlDB, "sqlite3", migrations, migrate.Up)
	if err != nil {
		log.Er("failed to apply migrations", err)
		os.Exit(1)
	}
	log.Info("Applied migrations", "count", applied)

	if *seedData {
		if err := seed.Seed(db, config, log); err != nil {
			log.Er("failed to seed development data", err)
			os.Exit(1)
		}
	}
}
