package repositories

import (
	"context"
	"database/sql"
	"depot-router/internal/domain"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the ShipmentSource port.
type PostgresShipmentRepository struct {
	DB    *sql.DB
	Clock domain.DayClock
}

func NewPostgresShipmentRepository(db *sql.DB, clock domain.DayClock) *PostgresShipmentRepository {
	return &PostgresShipmentRepository{DB: db, Clock: clock}
}

// Return all shipments stored in the database.
func (s *PostgresShipmentRepository) ListShipments(ctx context.Context) ([]*domain.Shipment, error) {
	if s.DB == nil {
		return nil, errors.New("postgres shipment repository: DB is nil")
	}

	query := `
	SELECT
		shipment_id,
		address,
		city,
		postal_code,
		deadline,
		weight_kg,
		note
	FROM shipments
	ORDER BY shipment_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list shipments: query shipments table: %w", err)
	}
	defer rows.Close()

	shipments := make([]*domain.Shipment, 0, 64)
	for rows.Next() {
		var (
			sh       domain.Shipment
			deadline string
		)
		err := rows.Scan(&sh.ShipmentID, &sh.Address, &sh.City, &sh.PostalCode, &deadline, &sh.WeightKg, &sh.Note)
		if err != nil {
			return nil, fmt.Errorf("list shipments: scan row: %w", err)
		}

		sh.Address = domain.NormalizeAddress(sh.Address)
		sh.Deadline, err = s.Clock.ParseDeadline(deadline)
		if err != nil {
			return nil, fmt.Errorf("list shipments: shipment_id=%d: %w", sh.ShipmentID, err)
		}
		shipments = append(shipments, &sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: row iteration: %w", err)
	}

	return shipments, nil
}
