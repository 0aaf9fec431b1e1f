package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"depot-router/internal/domain"
	"depot-router/internal/platform/obs"
	"depot-router/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRecorder struct {
	routes    int
	delivered int
}

func (r *recordingRecorder) RecordRoute(_ *domain.RoutePlan, delivered []*domain.Shipment) error {
	r.routes++
	r.delivered += len(delivered)
	return nil
}

func TestDispatchFullDay(t *testing.T) {
	d := fixtureDepot(t, 10)
	rec := &recordingRecorder{}
	ctx := obs.WithRunID(context.Background(), "run-1")

	res, err := Dispatch(ctx, d, DefaultDispatchPlan(), rec)
	require.NoError(t, err)
	assert.Equal(t, "run-1", res.RunID)

	// Every shipment delivered, on exactly one vehicle, within capacity.
	for _, s := range d.Shipments() {
		assert.True(t, s.Delivered(), "shipment %d", s.ShipmentID)
		holders := 0
		for _, v := range d.Vehicles() {
			if v.Holds(s.ShipmentID) {
				holders++
			}
		}
		assert.Equal(t, 1, holders, "shipment %d", s.ShipmentID)
	}
	for _, v := range d.Vehicles() {
		assert.LessOrEqual(t, v.Len(), v.Capacity)
	}
	assert.Empty(t, d.Unassigned())

	v0, _ := d.Vehicle(0)
	v1, _ := d.Vehicle(1)
	v2, _ := d.Vehicle(2)

	for _, id := range []int{13, 14, 15, 16, 19, 20} {
		assert.True(t, v0.Holds(id), "together shipment %d", id)
	}
	for _, id := range []int{3, 9, 18} {
		assert.True(t, v1.Holds(id), "restricted shipment %d", id)
	}
	clock := testutil.Clock()
	for _, id := range []int{6, 21} {
		assert.True(t, v2.Holds(id), "delayed shipment %d", id)
		s, _ := d.Shipment(id)
		assert.False(t, s.DeliveredAt.Before(clock.At(9, 5)), "delayed shipment %d", id)
	}

	s9, _ := d.Shipment(9)
	assert.Equal(t, "410 S State St", s9.Address)

	// Second wave leaves when the last first-wave vehicle is back.
	last := v0.Clock
	if v2.Clock.After(last) {
		last = v2.Clock
	}
	assert.Equal(t, last, res.SecondWaveAt)
	assert.Equal(t, last, v1.DepartAt)

	require.Len(t, res.Routes, 3)
	assert.Equal(t, []int{v0.VehicleID, v2.VehicleID, v1.VehicleID},
		[]int{res.Routes[0].VehicleID, res.Routes[1].VehicleID, res.Routes[2].VehicleID})

	total := 0.0
	for _, r := range res.Routes {
		total += r.TotalMiles
		assertGreedyPath(t, d.Table(), r)
		assertStampsAdvance(t, r)
	}
	assert.InDelta(t, total, res.TotalMiles, 1e-9)
	assert.InDelta(t, d.TotalMiles(), res.TotalMiles, 1e-9)

	assert.Equal(t, 3, rec.routes)
	assert.Equal(t, testutil.ShipmentCount, rec.delivered)
}

// Each stop is at least as close to its predecessor as any later stop.
func assertGreedyPath(t *testing.T, table *domain.AddressTable, r *domain.RoutePlan) {
	t.Helper()
	prev := domain.DepotIndex
	for k, stop := range r.Stops {
		for _, later := range r.Stops[k+1:] {
			assert.LessOrEqual(t,
				table.Distance(prev, stop.AddressIndex),
				table.Distance(prev, later.AddressIndex),
				"vehicle %d stop %d", r.VehicleID, k,
			)
		}
		prev = stop.AddressIndex
	}
}

// Arrivals come strictly after departure and never before an earlier stop.
func assertStampsAdvance(t *testing.T, r *domain.RoutePlan) {
	t.Helper()
	prev := r.DepartAt
	for k, stop := range r.Stops {
		if k == 0 {
			assert.True(t, stop.ArriveAt.After(prev), "vehicle %d first stop at %s, departed %s", r.VehicleID, stop.ArriveAt, prev)
		} else {
			assert.False(t, stop.ArriveAt.Before(prev), "vehicle %d stop %d at %s before %s", r.VehicleID, k, stop.ArriveAt, prev)
		}
		prev = stop.ArriveAt
	}
	assert.False(t, r.ReturnAt.Before(prev), "vehicle %d returns before last stop", r.VehicleID)
}

func TestDispatchFullDayStampsAdvance(t *testing.T) {
	for _, capacity := range []int{10, 16} {
		d := fixtureDepot(t, capacity)
		res, err := Dispatch(context.Background(), d, DefaultDispatchPlan(), nil)
		require.NoError(t, err, "capacity %d", capacity)
		for _, r := range res.Routes {
			assertStampsAdvance(t, r)
		}
	}
}

func TestDispatchSecondWaveKeepsDelayedDeparture(t *testing.T) {
	delayed := ship(1, "C")
	delayed.Note = "Delayed on flight"
	vehicles := []*domain.Vehicle{
		domain.NewVehicle(1, 16, 18, depart),
		domain.NewVehicle(2, 16, 18, depart),
		domain.NewVehicle(3, 16, 18, depart),
	}
	availableAt := depart.Add(65 * time.Minute)
	rules := PreloadRules{
		DelayedNotePrefix:  "Delayed",
		DelayedVehicle:     2,
		DelayedAvailableAt: availableAt,
	}
	d, err := NewDepot(smallTable(t), []*domain.Shipment{delayed, ship(2, "A"), ship(3, "B")}, vehicles, rules, nil)
	require.NoError(t, err)

	plan := DispatchPlan{LoadOrder: []int{0, 1, 2}, FirstWave: []int{0, 1}, SecondWave: []int{2}}
	res, err := Dispatch(context.Background(), d, plan, nil)
	require.NoError(t, err)

	// The first wave is back at 8:33:20, before the delayed shipment arrives.
	assert.Equal(t, depart.Add(33*time.Minute+20*time.Second), res.SecondWaveAt)
	assert.Equal(t, availableAt, vehicles[2].DepartAt)

	s, _ := d.Shipment(1)
	require.NotNil(t, s.DeliveredAt)
	assert.Equal(t, availableAt.Add(30*time.Minute), *s.DeliveredAt)
	assert.False(t, s.DeliveredAt.Before(availableAt))
}

func TestDispatchReportsUnassignedShipments(t *testing.T) {
	d := fixtureDepot(t, 7)

	_, err := Dispatch(context.Background(), d, DefaultDispatchPlan(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnassignedShipments))
}

func TestDispatchRejectsInvalidPlans(t *testing.T) {
	cases := map[string]DispatchPlan{
		"empty load order":   {FirstWave: []int{0, 1, 2}},
		"out of range":       {LoadOrder: []int{0, 3}, FirstWave: []int{0, 1, 2}},
		"vehicle twice":      {LoadOrder: []int{0}, FirstWave: []int{0, 1}, SecondWave: []int{1, 2}},
		"vehicle left out":   {LoadOrder: []int{0}, FirstWave: []int{0, 1}},
		"no first wave":      {LoadOrder: []int{0}, SecondWave: []int{0, 1, 2}},
		"wave out of range":  {LoadOrder: []int{0}, FirstWave: []int{0, 1, 2, 5}},
	}

	for name, plan := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Dispatch(context.Background(), fixtureDepot(t, 16), plan, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPlan))
		})
	}
}

func TestDispatchStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Dispatch(ctx, fixtureDepot(t, 16), DefaultDispatchPlan(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDispatchCorrectionFailure(t *testing.T) {
	plan := DefaultDispatchPlan()
	plan.Corrections = []Correction{{ShipmentID: 9, Address: "1 Nowhere Rd"}}

	_, err := Dispatch(context.Background(), fixtureDepot(t, 16), plan, nil)
	assert.True(t, errors.Is(err, domain.ErrUnknownAddress))
}
