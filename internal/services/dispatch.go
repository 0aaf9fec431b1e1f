package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"depot-router/internal/domain"
	"depot-router/internal/platform/metrics"
	"depot-router/internal/platform/obs"
)

var ErrInvalidPlan = errors.New("invalid dispatch plan")

// Correction replaces a shipment's destination before preloading.
type Correction struct {
	ShipmentID int
	Address    string
	City       string
	PostalCode int
}

// DispatchPlan fixes the order of the day. Vehicle numbers are positions in
// the depot's vehicle list.
type DispatchPlan struct {
	Corrections []Correction
	// Vehicles loaded in turn, threading the leftover pool.
	LoadOrder []int
	// Vehicles that leave at their own departure time.
	FirstWave []int
	// Vehicles that leave once the last first-wave vehicle is back.
	SecondWave []int
}

// DefaultDispatchPlan is the standard day: shipment 9 is re-addressed, the
// delayed vehicle loads first, and the second vehicle waits for a driver.
func DefaultDispatchPlan() DispatchPlan {
	return DispatchPlan{
		Corrections: []Correction{
			{ShipmentID: 9, Address: "410 S State St", City: "Salt Lake City", PostalCode: 84111},
		},
		LoadOrder:  []int{2, 0, 1},
		FirstWave:  []int{0, 2},
		SecondWave: []int{1},
	}
}

func (p DispatchPlan) validate(vehicles int) error {
	if len(p.LoadOrder) == 0 {
		return fmt.Errorf("%w: load order is empty", ErrInvalidPlan)
	}
	for _, vi := range p.LoadOrder {
		if vi < 0 || vi >= vehicles {
			return fmt.Errorf("%w: load order vehicle %d: %w", ErrInvalidPlan, vi, ErrVehicleOutOfRange)
		}
	}

	seen := make(map[int]bool, vehicles)
	for _, wave := range [][]int{p.FirstWave, p.SecondWave} {
		for _, vi := range wave {
			if vi < 0 || vi >= vehicles {
				return fmt.Errorf("%w: wave vehicle %d: %w", ErrInvalidPlan, vi, ErrVehicleOutOfRange)
			}
			if seen[vi] {
				return fmt.Errorf("%w: vehicle %d dispatched twice", ErrInvalidPlan, vi)
			}
			seen[vi] = true
		}
	}
	if len(seen) != vehicles {
		return fmt.Errorf("%w: waves cover %d of %d vehicles", ErrInvalidPlan, len(seen), vehicles)
	}
	if len(p.SecondWave) > 0 && len(p.FirstWave) == 0 {
		return fmt.Errorf("%w: second wave without a first wave", ErrInvalidPlan)
	}
	return nil
}

type DispatchResult struct {
	RunID string
	// Routes in the order the vehicles were dispatched.
	Routes     []*domain.RoutePlan
	TotalMiles float64
	// Departure of the second wave; zero when there is none.
	SecondWaveAt time.Time
}

// Dispatch runs the whole day against the depot: corrections, preload,
// greedy loading in LoadOrder, delivery of the first wave, then the second
// wave departing at the latest first-wave return clock.
func Dispatch(ctx context.Context, d *Depot, plan DispatchPlan, rec metrics.Recorder) (_ *DispatchResult, err error) {
	if d == nil {
		return nil, errors.New("dispatch: depot must be non-nil")
	}
	if rec == nil {
		rec = metrics.NopRecorder{}
	}
	if err := plan.validate(len(d.vehicles)); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}

	defer obs.Time(ctx, d.log, "dispatch")(&err)

	for _, c := range plan.Corrections {
		if err := d.CorrectShipment(c.ShipmentID, c.Address, c.City, c.PostalCode); err != nil {
			return nil, fmt.Errorf("dispatch: %w", err)
		}
	}

	if err := d.phase(ctx, "preload", d.Preload); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}

	err = d.phase(ctx, "load", func() error {
		pool := d.Unassigned()
		for _, vi := range plan.LoadOrder {
			var lerr error
			pool, lerr = d.Load(d.vehicles[vi], pool)
			if lerr != nil {
				return lerr
			}
		}
		if len(pool) > 0 {
			return fmt.Errorf("%d shipments %v: %w", len(pool), pool, ErrUnassignedShipments)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}

	res := &DispatchResult{RunID: obs.RunID(ctx)}

	deliverWave := func(wave []int) error {
		for _, vi := range wave {
			v := d.vehicles[vi]
			route, err := d.Deliver(v)
			if err != nil {
				return err
			}
			if rerr := rec.RecordRoute(route, d.Manifest(v)); rerr != nil {
				d.log.Warnf("record route vehicle=%d: %v", v.VehicleID, rerr)
			}
			res.Routes = append(res.Routes, route)
		}
		return nil
	}

	if err := d.phase(ctx, "deliver_first_wave", func() error { return deliverWave(plan.FirstWave) }); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}

	if len(plan.SecondWave) > 0 {
		for _, vi := range plan.FirstWave {
			if c := d.vehicles[vi].Clock; c.After(res.SecondWaveAt) {
				res.SecondWaveAt = c
			}
		}
		// A vehicle held back by preload keeps its later departure.
		for _, vi := range plan.SecondWave {
			v := d.vehicles[vi]
			if res.SecondWaveAt.After(v.DepartAt) {
				v.SetDeparture(res.SecondWaveAt)
			}
		}

		if err := d.phase(ctx, "deliver_second_wave", func() error { return deliverWave(plan.SecondWave) }); err != nil {
			return nil, fmt.Errorf("dispatch: %w", err)
		}
	}

	res.TotalMiles = d.TotalMiles()
	d.log.Infof("dispatched vehicles=%d total_miles=%.1f late=%d", len(res.Routes), res.TotalMiles, len(d.Late()))
	return res, nil
}

func (d *Depot) phase(ctx context.Context, name string, fn func() error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer obs.Time(ctx, d.log, name)(&err)
	return fn()
}
