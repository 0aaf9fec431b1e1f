// Package testutil holds a small synthetic service area shared by tests.
package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"depot-router/internal/domain"
)

type site struct {
	address string
	x, y    float64
}

// Depot first. Distances are straight-line miles rounded to a tenth.
var sites = []site{
	{"4001 South 700 East", 0, 0},
	{"1060 Dalton Ave S", 1.0, 2.5},
	{"1330 2100 S", 3.2, 0.4},
	{"195 W Oakland Ave", 2.1, 3.6},
	{"2010 W 500 S", 4.5, 2.2},
	{"300 State St", 0.6, 5.1},
	{"410 S State St", 0.9, 4.7},
	{"5383 South 900 East #104", 5.8, 5.3},
	{"3060 Lester St", 6.4, 1.1},
}

type shipmentRow struct {
	id       int
	site     int
	deadline string
	weight   float64
	note     string
}

var shipmentRows = []shipmentRow{
	{1, 1, "10:30 AM", 21, ""},
	{2, 2, "EOD", 44, ""},
	{3, 3, "EOD", 2, "Can only be on truck 2"},
	{4, 4, "EOD", 4, ""},
	{5, 5, "EOD", 5, ""},
	{6, 7, "10:30 AM", 88, "Delayed on flight---will not arrive to depot until 9:05 am"},
	{7, 8, "EOD", 8, ""},
	{8, 2, "EOD", 9, ""},
	{9, 5, "EOD", 2, "Wrong address listed"},
	{10, 4, "EOD", 1, ""},
	{11, 8, "EOD", 1, ""},
	{12, 3, "EOD", 1, ""},
	{13, 1, "10:30 AM", 2, ""},
	{14, 2, "10:30 AM", 88, "Must be delivered with 15, 19"},
	{15, 6, "9:00 AM", 4, ""},
	{16, 6, "10:30 AM", 88, "Must be delivered with 13, 19"},
	{17, 7, "EOD", 2, ""},
	{18, 4, "EOD", 6, "Can only be on truck 2"},
	{19, 3, "EOD", 37, ""},
	{20, 8, "10:30 AM", 37, "Must be delivered with 13, 15"},
	{21, 7, "EOD", 3, "Delayed on flight---will not arrive to depot until 9:05 am"},
	{22, 1, "EOD", 5, ""},
	{23, 3, "EOD", 5, ""},
	{24, 5, "EOD", 7, ""},
}

// ShipmentCount is the number of shipments in the fixture.
var ShipmentCount = len(shipmentRows)

// Clock is the fixture's operating day: 2026-01-05 ending at 11:59 PM.
func Clock() domain.DayClock {
	return domain.NewDayClock(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), 23, 59)
}

func Addresses() []string {
	out := make([]string, len(sites))
	for i, s := range sites {
		out[i] = s.address
	}
	return out
}

// Address returns the fixture address at table position i.
func Address(i int) string { return sites[i].address }

func distances() [][]float64 {
	n := len(sites)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			d := math.Hypot(sites[i].x-sites[j].x, sites[i].y-sites[j].y)
			m[i][j] = math.Round(d*10) / 10
		}
	}
	return m
}

func Table(t testing.TB) *domain.AddressTable {
	t.Helper()
	table, err := domain.NewAddressTable(Addresses(), distances())
	if err != nil {
		t.Fatalf("fixture table: %v", err)
	}
	return table
}

// Shipments returns fresh shipment records on every call.
func Shipments(t testing.TB) []*domain.Shipment {
	t.Helper()
	clock := Clock()

	out := make([]*domain.Shipment, 0, len(shipmentRows))
	for _, r := range shipmentRows {
		deadline, err := clock.ParseDeadline(r.deadline)
		if err != nil {
			t.Fatalf("fixture shipment %d: %v", r.id, err)
		}
		out = append(out, &domain.Shipment{
			ShipmentID: r.id,
			Address:    sites[r.site].address,
			City:       "Salt Lake City",
			PostalCode: 84100 + r.site,
			Deadline:   deadline,
			WeightKg:   r.weight,
			Note:       r.note,
		})
	}
	return out
}

// Fleet builds n vehicles numbered from 1, all leaving at departAt.
func Fleet(n, capacity int, departAt time.Time) []*domain.Vehicle {
	out := make([]*domain.Vehicle, n)
	for i := range out {
		out[i] = domain.NewVehicle(i+1, capacity, domain.DefaultSpeedMPH, departAt)
	}
	return out
}

// ShipmentsCSV renders the fixture in the shipment file layout, header included.
func ShipmentsCSV() string {
	var b strings.Builder
	b.WriteString("id,address,city,state,postal,deadline,weight,note\n")
	for _, r := range shipmentRows {
		fmt.Fprintf(&b, "%d,%s,Salt Lake City,UT,%d,%s,%g,\"%s\"\n",
			r.id, sites[r.site].address, 84100+r.site, r.deadline, r.weight, r.note)
	}
	return b.String()
}

// DistancesCSV renders the fixture as a lower-triangular distance chart.
func DistancesCSV() string {
	m := distances()
	var b strings.Builder
	for i, s := range sites {
		b.WriteString(`"` + s.address + `"`)
		for j := range sites {
			b.WriteString(",")
			if j <= i {
				fmt.Fprintf(&b, "%g", m[i][j])
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFile writes content under t.TempDir and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
