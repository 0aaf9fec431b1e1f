package repositories

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

// Column layout of the shipment file. The state column is carried by the
// source data but not used for routing.
const (
	colID = iota
	colAddress
	colCity
	colState
	colPostalCode
	colDeadline
	colWeight
	colNote
	minShipmentColumns = colNote
)

// CSVShipmentRepository reads shipments from a delimited text file with the
// layout id,address,city,state,postal,deadline,weight[,note]. A header row is
// skipped when its first column is not an integer.
type CSVShipmentRepository struct {
	Path  string
	Clock domain.DayClock
}

func NewCSVShipmentRepository(path string, clock domain.DayClock) *CSVShipmentRepository {
	return &CSVShipmentRepository{Path: path, Clock: clock}
}

// Return all shipments in file order.
func (r *CSVShipmentRepository) ListShipments(ctx context.Context) ([]*domain.Shipment, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("list shipments: open %q: %w", r.Path, err)
	}
	defer f.Close()

	shipments, err := ReadShipments(ctx, f, r.Clock)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %q: %w", r.Path, err)
	}
	return shipments, nil
}

// ReadShipments parses shipment records from rd.
func ReadShipments(ctx context.Context, rd io.Reader, clock domain.DayClock) ([]*domain.Shipment, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	shipments := make([]*domain.Shipment, 0, 64)
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		if line == 1 {
			if _, err := strconv.Atoi(strings.TrimSpace(rec[colID])); err != nil {
				continue
			}
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		s, err := parseShipmentRecord(rec, clock)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

func parseShipmentRecord(rec []string, clock domain.DayClock) (*domain.Shipment, error) {
	if len(rec) < minShipmentColumns {
		return nil, fmt.Errorf("want at least %d columns, got %d", minShipmentColumns, len(rec))
	}

	id, err := strconv.Atoi(strings.TrimSpace(rec[colID]))
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid shipment id %q", rec[colID])
	}

	address := domain.NormalizeAddress(rec[colAddress])
	if address == "" {
		return nil, fmt.Errorf("shipment %d: address cannot be empty", id)
	}

	postal, err := strconv.Atoi(strings.TrimSpace(rec[colPostalCode]))
	if err != nil {
		return nil, fmt.Errorf("shipment %d: invalid postal code %q", id, rec[colPostalCode])
	}

	deadline, err := clock.ParseDeadline(rec[colDeadline])
	if err != nil {
		return nil, fmt.Errorf("shipment %d: deadline: %w", id, err)
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(rec[colWeight]), 64)
	if err != nil {
		return nil, fmt.Errorf("shipment %d: invalid weight %q", id, rec[colWeight])
	}

	note := ""
	if len(rec) > colNote {
		note = strings.Trim(strings.Join(rec[colNote:], ","), ", ")
	}

	return &domain.Shipment{
		ShipmentID: id,
		Address:    address,
		City:       strings.TrimSpace(rec[colCity]),
		PostalCode: postal,
		Deadline:   deadline,
		WeightKg:   weight,
		Note:       note,
	}, nil
}

// FormatDeadline is the inverse of DayClock.ParseDeadline.
func FormatDeadline(d domain.Deadline) string {
	if d.EndOfDay {
		return domain.EndOfDayToken
	}
	return d.At.Format("3:04 PM")
}
