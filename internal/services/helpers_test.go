package services

import (
	"testing"
	"time"

	"depot-router/internal/domain"
	"depot-router/internal/testutil"

	"github.com/stretchr/testify/require"
)

var depart = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

// smallTable is a depot and three stops:
//
//	   D  A  B  C
//	D  0  3  5  9
//	A  3  0  2  7
//	B  5  2  0  4
//	C  9  7  4  0
func smallTable(t *testing.T) *domain.AddressTable {
	t.Helper()
	table, err := domain.NewAddressTable(
		[]string{"D", "A", "B", "C"},
		[][]float64{
			{0, 3, 5, 9},
			{3, 0, 2, 7},
			{5, 2, 0, 4},
			{9, 7, 4, 0},
		},
	)
	require.NoError(t, err)
	return table
}

func ship(id int, address string) *domain.Shipment {
	return &domain.Shipment{
		ShipmentID: id,
		Address:    address,
		Deadline:   domain.Deadline{At: depart.Add(16 * time.Hour), EndOfDay: true},
	}
}

// smallDepot puts every shipment in the pool of a one-vehicle depot.
func smallDepot(t *testing.T, capacity int, shipments ...*domain.Shipment) (*Depot, *domain.Vehicle) {
	t.Helper()
	v := domain.NewVehicle(1, capacity, 18, depart)
	d, err := NewDepot(smallTable(t), shipments, []*domain.Vehicle{v}, PreloadRules{}, nil)
	require.NoError(t, err)
	return d, v
}

func fixtureDepot(t *testing.T, capacity int) *Depot {
	t.Helper()
	clock := testutil.Clock()
	d, err := NewDepot(
		testutil.Table(t),
		testutil.Shipments(t),
		testutil.Fleet(3, capacity, clock.At(8, 0)),
		DefaultPreloadRules(clock),
		nil,
	)
	require.NoError(t, err)
	return d
}

func manifestIDs(d *Depot, vi int) []int {
	v, _ := d.Vehicle(vi)
	var ids []int
	for _, s := range d.Manifest(v) {
		ids = append(ids, s.ShipmentID)
	}
	return ids
}
