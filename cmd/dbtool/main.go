package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"depot-router/internal/adapters/distance"
	"depot-router/internal/adapters/repositories"
	"depot-router/internal/config"
	"depot-router/internal/platform/db"
	"depot-router/internal/platform/logger"
)

// dbtool creates the Postgres schema and seeds it from the CSV files named in
// the config, so the router can run with data.source=postgres.
func main() {
	configPath := flag.String("config", "", "config file (yaml or json)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Data.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	log := logger.New("dbtool", logger.Options{Format: cfg.Logging.Format, Level: cfg.Logging.Level})

	conn, err := db.Open(cfg.Data.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	return initAndSeed(ctx, conn, cfg, log)
}

func initAndSeed(ctx context.Context, conn *sql.DB, cfg *config.Config, log logger.Logger) error {
	clock, err := cfg.Depot.Clock()
	if err != nil {
		return err
	}

	log.Infof("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Infof("Schema ready.")

	table, err := distance.NewCSVAddressTable(cfg.Data.DistancesPath).LoadAddressTable(ctx)
	if err != nil {
		return err
	}
	shipments, err := repositories.NewCSVShipmentRepository(cfg.Data.ShipmentsPath, clock).ListShipments(ctx)
	if err != nil {
		return err
	}

	log.Infof("Seeding database...")
	if err := repositories.SeedAddressTable(ctx, conn, table); err != nil {
		return fmt.Errorf("seeding addresses failed: %w", err)
	}
	if err := repositories.SeedShipments(ctx, conn, shipments); err != nil {
		return fmt.Errorf("seeding shipments failed: %w", err)
	}
	log.Infof("Seeding complete. addresses=%d shipments=%d", table.Len(), len(shipments))

	return nil
}
