package distance

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"depot-router/internal/domain"
)

// CSVAddressTable reads a distance chart: one row per address, the address in
// the first column followed by its distance to every address in row order.
// Blank cells are filled from the transposed cell, so lower-triangular charts
// are accepted.
type CSVAddressTable struct {
	Path string
}

func NewCSVAddressTable(path string) *CSVAddressTable {
	return &CSVAddressTable{Path: path}
}

func (c *CSVAddressTable) LoadAddressTable(ctx context.Context) (*domain.AddressTable, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("load address table: open %q: %w", c.Path, err)
	}
	defer f.Close()

	table, err := ReadAddressTable(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load address table: %q: %w", c.Path, err)
	}
	return table, nil
}

// ReadAddressTable parses a distance chart from rd.
func ReadAddressTable(ctx context.Context, rd io.Reader) (*domain.AddressTable, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read distance chart: %w", err)
		}
		rows = append(rows, rec)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addresses := make([]string, 0, len(rows))
	for _, rec := range rows {
		addresses = append(addresses, rec[0])
	}

	m, err := newSparseMatrix(addresses)
	if err != nil {
		return nil, fmt.Errorf("read distance chart: %w", err)
	}

	n := len(rows)
	for i, rec := range rows {
		cells := rec[1:]
		if len(cells) > n {
			extra := cells[n:]
			for _, c := range extra {
				if strings.TrimSpace(c) != "" {
					return nil, fmt.Errorf("read distance chart: row %d has %d distances for %d addresses", i+1, len(cells), n)
				}
			}
			cells = cells[:n]
		}

		for j, c := range cells {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			miles, err := strconv.ParseFloat(c, 64)
			if err != nil {
				return nil, fmt.Errorf("read distance chart: row %d column %d: invalid distance %q", i+1, j+2, c)
			}
			m.set(i, j, miles)
		}
	}

	table, err := m.build()
	if err != nil {
		return nil, fmt.Errorf("read distance chart: %w", err)
	}
	return table, nil
}
