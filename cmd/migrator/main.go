package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/YusovID/service-dispatch/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const defaultMigrationsTable = "schema_migrations"

type migrationConfig struct {
	DatabaseURL     string
	MigrationsPath  string
	MigrationsTable string
}

func main() {
	cfg, err := loadMigrationConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	m, err := migrate.New(
		"file://"+cfg.MigrationsPath,
		fmt.Sprintf("%s&x-migrations-table=%s", cfg.DatabaseURL, cfg.MigrationsTable),
	)
	if err != nil {
		log.Fatalf("can't create new migration: %v", err)
	}
	defer m.Close()

	var cmd string
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "down":
		if err := down(m); err != nil {
			log.Fatal(err)
		}

		fmt.Println("migrations rolled back successfully")
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("can't read migration version: %v", err)
		}

		fmt.Printf("version %d (dirty: %t)\n", v, dirty)
	case "up", "":
		if err := up(m); err != nil {
			log.Fatal(err)
		}

		fmt.Println("migrations applied successfully")
	default:
		log.Fatalf("unknown command %q, expected up, down or version", cmd)
	}
}

// loadMigrationConfig reuses the service config for the database location.
// MIGRATIONS_PATH is required, MIGRATIONS_TABLE falls back to the migrate default.
func loadMigrationConfig() (*migrationConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		return nil, errors.New("MIGRATIONS_PATH is not set")
	}

	migrationsTable := os.Getenv("MIGRATIONS_TABLE")
	if migrationsTable == "" {
		migrationsTable = defaultMigrationsTable
	}

	return &migrationConfig{
		DatabaseURL:     cfg.Postgres.ConnString(),
		MigrationsPath:  migrationsPath,
		MigrationsTable: migrationsTable,
	}, nil
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("no new migrations to apply")
			return nil
		}

		return fmt.Errorf("can't do migrations: %w", err)
	}

	return nil
}

func down(m *migrate.Migrate) error {
	if err := m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return errors.New("no migrations to roll back")
		}

		return fmt.Errorf("can't down migrations: %w", err)
	}

	return nil
}
