package main

import (
	"errors"
	"flag"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/config"
	"BOOKING_BACK-END/internal/logger"
)

func main() {
	var (
		migrationsPath  string
		migrationsTable string
		down            bool
	)

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	flag.StringVar(&migrationsPath, "migrations-path", cfg.Database.MigrationsPath, "path to migrations")
	// table for keeping info about migrations
	flag.StringVar(&migrationsTable, "migrations-table", cfg.Database.MigrationsTable, "name of migrations table")
	flag.BoolVar(&down, "down", false, "roll back one migration instead of applying all")
	flag.Parse()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if migrationsPath == "" {
		log.Fatal("migrations-path is required")
	}

	m, err := migrate.New(
		"file://"+migrationsPath,
		cfg.GetDSN()+"&x-migrations-table="+migrationsTable,
	)
	if err != nil {
		log.Fatal("open migrations", zap.Error(err))
	}
	defer m.Close()

	if down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return
		}
		log.Fatal("apply migrations", zap.Error(err))
	}

	version, dirty, _ := m.Version()
	log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
