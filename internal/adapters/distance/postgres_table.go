package distance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"depot-router/internal/domain"
)

// PostgresAddressTable reads the address table seeded by dbtool.
type PostgresAddressTable struct {
	DB *sql.DB
}

func NewPostgresAddressTable(db *sql.DB) *PostgresAddressTable {
	return &PostgresAddressTable{DB: db}
}

func (p *PostgresAddressTable) LoadAddressTable(ctx context.Context) (*domain.AddressTable, error) {
	if p.DB == nil {
		return nil, errors.New("postgres address table: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `
	SELECT address_index, address
	FROM addresses
	ORDER BY address_index;
	`)
	if err != nil {
		return nil, fmt.Errorf("load address table: query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []string
	for rows.Next() {
		var idx int
		var addr string
		if err := rows.Scan(&idx, &addr); err != nil {
			return nil, fmt.Errorf("load address table: scan address: %w", err)
		}
		if idx != len(addresses) {
			return nil, fmt.Errorf("load address table: address_index %d out of sequence", idx)
		}
		addresses = append(addresses, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load address table: address iteration: %w", err)
	}

	m, err := newSparseMatrix(addresses)
	if err != nil {
		return nil, fmt.Errorf("load address table: %w", err)
	}

	drows, err := p.DB.QueryContext(ctx, `SELECT from_index, to_index, miles FROM distances;`)
	if err != nil {
		return nil, fmt.Errorf("load address table: query distances: %w", err)
	}
	defer drows.Close()

	for drows.Next() {
		var i, j int
		var miles float64
		if err := drows.Scan(&i, &j, &miles); err != nil {
			return nil, fmt.Errorf("load address table: scan distance: %w", err)
		}
		if i < 0 || j < 0 || i >= len(addresses) || j >= len(addresses) {
			return nil, fmt.Errorf("load address table: distance %d->%d outside table", i, j)
		}
		m.set(i, j, miles)
	}
	if err := drows.Err(); err != nil {
		return nil, fmt.Errorf("load address table: distance iteration: %w", err)
	}

	table, err := m.build()
	if err != nil {
		return nil, fmt.Errorf("load address table: %w", err)
	}
	return table, nil
}
