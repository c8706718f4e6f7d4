package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/linemk/warehouse-facade/internal/config"
	"github.com/linemk/warehouse-facade/internal/warehouse"
)

// Мигратор поднимает локальное postgres-хранилище: схема tpch_sf10 с таблицами
// customer и orders и небольшим набором данных для разработки.

// buildMigrateDSN добавляет к DSN параметры golang-migrate
func buildMigrateDSN(cfg config.WarehouseConfig, migrationTable string) (string, error) {
	dsn, err := warehouse.DSN(cfg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s&x-migrations-table=%s", dsn, migrationTable), nil
}

func main() {
	var migrationsPathFlag string
	flag.String("config", "", "path to config file")
	flag.StringVar(&migrationsPathFlag, "migrations-path", "", "path to migration files")
	flag.Parse()

	cfg := config.MustLoad()

	if cfg.Warehouse.Driver != warehouse.DriverPostgres {
		log.Fatalf("migrator supports only the postgres warehouse, got %q", cfg.Warehouse.Driver)
	}
	if cfg.Warehouse.Password == "" {
		log.Fatal("WAREHOUSE_PASSWORD environment variable is required")
	}

	migrationsPath := cfg.Migrations.Path
	if migrationsPathFlag != "" {
		migrationsPath = migrationsPathFlag
	}

	dsnForMigrate, err := buildMigrateDSN(cfg.Warehouse, "migrations")
	if err != nil {
		log.Fatalf("failed to build dsn: %v", err)
	}
	log.Printf("Applying migrations from %s to %s/%s", migrationsPath, cfg.Warehouse.Host, cfg.Warehouse.Database)

	// Создаем объект мигратора
	m, err := migrate.New("file://"+migrationsPath, dsnForMigrate)
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migrations to apply")
		} else {
			log.Fatalf("migration failed: %v", err)
		}
	} else {
		log.Println("Migrations applied successfully")
	}

	dsnForQuery, err := warehouse.DSN(cfg.Warehouse)
	if err != nil {
		log.Fatalf("failed to build dsn: %v", err)
	}
	db, err := sqlx.Open("postgres", dsnForQuery)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var tables []string
	err = db.Select(&tables, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		ORDER BY table_name`, cfg.Warehouse.Schema)
	if err != nil {
		log.Fatalf("failed to query tables: %v", err)
	}

	fmt.Printf("Current tables in schema %s:\n", cfg.Warehouse.Schema)
	for _, name := range tables {
		fmt.Println(" -", name)
	}
}
