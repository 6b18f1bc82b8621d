package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"hiring-board/internal/config"
	"hiring-board/internal/database/migration"
	"hiring-board/internal/database/postgres"
	"hiring-board/internal/database/seeder"
)

func main() {
	skipMigrate := flag.Bool("skip-migrate", false, "seed without applying migrations first")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if !*skipMigrate {
		r := migration.Runner{Dir: cfg.Migration.Dir, Logger: logger}
		if err := r.Run(ctx, db.SQLDB()); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
	}

	sr := seeder.Runner{Logger: logger, Seeders: seeder.Defaults(cfg.Seed)}
	if err := sr.Run(ctx, db); err != nil {
		logger.Fatalf("seed failed: %v", err)
	}
	logger.Printf("[Seed] admin account %s ready", cfg.Seed.AdminEmail)
}
