package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"depot-router/internal/domain"
)

// Initialize the Postgres schema for shipments and the address table.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipments (
		shipment_id INTEGER PRIMARY KEY,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		postal_code INTEGER NOT NULL,
		deadline TEXT NOT NULL,
		weight_kg DOUBLE PRECISION NOT NULL,
		note TEXT NOT NULL DEFAULT ''
	);
	`

	createAddressesQuery := `
	CREATE TABLE IF NOT EXISTS addresses (
		address_index INTEGER PRIMARY KEY,
		address TEXT NOT NULL UNIQUE
	);
	`

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS distances (
		from_index INTEGER NOT NULL REFERENCES addresses(address_index),
		to_index INTEGER NOT NULL REFERENCES addresses(address_index),
		miles DOUBLE PRECISION NOT NULL CHECK (miles >= 0),
		PRIMARY KEY (from_index, to_index)
	);
	`

	statements := []string{
		createShipmentsQuery,
		createAddressesQuery,
		createDistancesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert shipment records.
func SeedShipments(ctx context.Context, db *sql.DB, shipments []*domain.Shipment) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed shipments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO shipments (shipment_id, address, city, postal_code, deadline, weight_kg, note)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (shipment_id) DO UPDATE
	SET address = EXCLUDED.address,
		city = EXCLUDED.city,
		postal_code = EXCLUDED.postal_code,
		deadline = EXCLUDED.deadline,
		weight_kg = EXCLUDED.weight_kg,
		note = EXCLUDED.note;
	`)
	if err != nil {
		return fmt.Errorf("seed shipments: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range shipments {
		if _, err := stmt.ExecContext(ctx,
			s.ShipmentID, s.Address, s.City, s.PostalCode, FormatDeadline(s.Deadline), s.WeightKg, s.Note,
		); err != nil {
			return fmt.Errorf("seed shipments: insert shipment_id=%d: %w", s.ShipmentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed shipments: commit tx: %w", err)
	}

	return nil
}

// Replace the stored address table with the given one.
func SeedAddressTable(ctx context.Context, db *sql.DB, table *domain.AddressTable) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed address table: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{`DELETE FROM distances;`, `DELETE FROM addresses;`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("seed address table: clear: %w", err)
		}
	}

	addrStmt, err := tx.PrepareContext(ctx, `INSERT INTO addresses (address_index, address) VALUES ($1, $2);`)
	if err != nil {
		return fmt.Errorf("seed address table: prepare addresses: %w", err)
	}
	defer addrStmt.Close()

	for i := 0; i < table.Len(); i++ {
		if _, err := addrStmt.ExecContext(ctx, i, table.Address(i)); err != nil {
			return fmt.Errorf("seed address table: insert address %d: %w", i, err)
		}
	}

	distStmt, err := tx.PrepareContext(ctx, `INSERT INTO distances (from_index, to_index, miles) VALUES ($1, $2, $3);`)
	if err != nil {
		return fmt.Errorf("seed address table: prepare distances: %w", err)
	}
	defer distStmt.Close()

	for i := 0; i < table.Len(); i++ {
		for j := 0; j < table.Len(); j++ {
			if _, err := distStmt.ExecContext(ctx, i, j, table.Distance(i, j)); err != nil {
				return fmt.Errorf("seed address table: insert distance %d->%d: %w", i, j, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed address table: commit tx: %w", err)
	}

	return nil
}
