package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"depot-router/internal/adapters/distance"
	"depot-router/internal/adapters/repositories"
	"depot-router/internal/config"
	"depot-router/internal/domain"
	"depot-router/internal/platform/db"
	"depot-router/internal/platform/logger"
	"depot-router/internal/platform/metrics"
	"depot-router/internal/platform/obs"
	"depot-router/internal/ports"
	"depot-router/internal/report"
	"depot-router/internal/services"
)

// app is one finished dispatch run plus what the commands need to report on it.
type app struct {
	cfg    *config.Config
	clock  domain.DayClock
	depot  *services.Depot
	result *services.DispatchResult
	writer *report.Writer
}

func dispatch(ctx context.Context, opts *rootOptions) (_ *app, err error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.ShipmentsPath != "" {
		cfg.Data.ShipmentsPath = opts.ShipmentsPath
	}
	if opts.DistancesPath != "" {
		cfg.Data.DistancesPath = opts.DistancesPath
	}

	log := logger.New("router", logger.Options{
		Format: cfg.Logging.Format,
		Level:  cfg.Logging.Level,
		Out:    opts.errOut,
	})

	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)
	defer obs.Time(ctx, log, "router.dispatch")(&err)

	writer, err := report.NewWriter(opts.out, opts.Format)
	if err != nil {
		return nil, err
	}

	clock, err := cfg.Depot.Clock()
	if err != nil {
		return nil, fmt.Errorf("depot clock: %w", err)
	}

	shipmentSource, tableSource, closeSources, err := openSources(cfg.Data, clock)
	if err != nil {
		return nil, err
	}
	defer closeSources()

	table, err := tableSource.LoadAddressTable(ctx)
	if err != nil {
		return nil, err
	}
	shipments, err := shipmentSource.ListShipments(ctx)
	if err != nil {
		return nil, err
	}

	fleet, err := cfg.Depot.Fleet(clock)
	if err != nil {
		return nil, err
	}
	rules, err := cfg.Preload.Rules(clock)
	if err != nil {
		return nil, err
	}

	depot, err := services.NewDepot(table, shipments, fleet, rules, log.With("run_id", runID), cfg.Depot.StoreOptions()...)
	if err != nil {
		return nil, err
	}

	rec, err := metrics.NewPromRecorder()
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	result, err := services.Dispatch(ctx, depot, cfg.Dispatch.Plan(), rec)
	if err != nil {
		return nil, err
	}

	if path := cfg.Metrics.TextfilePath; path != "" {
		if err := rec.WriteTextfile(path); err != nil {
			log.Warnf("write metrics textfile path=%s: %v", path, err)
		}
	}

	return &app{cfg: cfg, clock: clock, depot: depot, result: result, writer: writer}, nil
}

// openSources picks the shipment and distance sources for the configured
// data source. The returned close func is always safe to call.
func openSources(cfg config.DataConfig, clock domain.DayClock) (ports.ShipmentSource, ports.AddressTableSource, func(), error) {
	switch cfg.Source {
	case config.SourcePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, func() {}, fmt.Errorf("open database: %w", err)
		}
		return repositories.NewPostgresShipmentRepository(conn, clock),
			distance.NewPostgresAddressTable(conn),
			func() { closeDB(conn) },
			nil
	default:
		return repositories.NewCSVShipmentRepository(cfg.ShipmentsPath, clock),
			distance.NewCSVAddressTable(cfg.DistancesPath),
			func() {},
			nil
	}
}

func closeDB(conn *sql.DB) { _ = conn.Close() }
